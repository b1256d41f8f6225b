package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salustele/teleconsult-api/internal/config"
	dbpkg "github.com/salustele/teleconsult-api/internal/db"
	"github.com/salustele/teleconsult-api/internal/models"
	"github.com/salustele/teleconsult-api/internal/timezone"
)

// Seeds a local database with a doctor, patients, beneficiaries and two
// remote appointments ready to be started.
func main() {
	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	if err := seed(db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	fmt.Println("Seed complete. Credentials (password for all: senha123):")
	fmt.Println("  admin:   admin@teleconsult.local")
	fmt.Println("  doctor:  dra.helena@teleconsult.local")
	fmt.Println("  patient: joao@teleconsult.local  (direct appointment)")
	fmt.Println("  titular: maria@teleconsult.local (beneficiary appointment)")
}

func seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("senha123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{Name: "Admin", Email: "admin@teleconsult.local", PasswordHash: string(hash), Role: "admin"}
	if err := upsertUser(db, &admin); err != nil {
		return err
	}

	doctorUser := models.User{Name: "Dra. Helena Souza", Email: "dra.helena@teleconsult.local", PasswordHash: string(hash), Role: "doctor", Phone: "11999990001"}
	if err := upsertUser(db, &doctorUser); err != nil {
		return err
	}

	doctor := models.DoctorProfile{UserID: doctorUser.ID, CRM: "CRM-SP 123456", Specialty: "Clínica Geral"}
	if err := db.Where("user_id = ?", doctorUser.ID).FirstOrCreate(&doctor).Error; err != nil {
		return err
	}

	joao := models.User{Name: "João Pereira", Email: "joao@teleconsult.local", PasswordHash: string(hash), Role: "patient", Phone: "11999990002"}
	if err := upsertUser(db, &joao); err != nil {
		return err
	}

	maria := models.User{Name: "Maria Lima", Email: "maria@teleconsult.local", PasswordHash: string(hash), Role: "patient", Phone: "11999990003"}
	if err := upsertUser(db, &maria); err != nil {
		return err
	}

	titular := models.Beneficiary{UserID: maria.ID, Name: "Maria Lima", Kind: models.BeneficiaryTitular}
	if err := db.Where("user_id = ? AND kind = ?", maria.ID, models.BeneficiaryTitular).FirstOrCreate(&titular).Error; err != nil {
		return err
	}

	dependente := models.Beneficiary{UserID: maria.ID, Name: "Pedro Lima", Kind: models.BeneficiaryDependente, PrincipalID: &titular.ID}
	if err := db.Where("name = ? AND kind = ?", "Pedro Lima", models.BeneficiaryDependente).FirstOrCreate(&dependente).Error; err != nil {
		return err
	}

	today := timezone.Now().Truncate(24 * time.Hour)

	// Appointment 1: direct patient reference.
	ap1 := models.Appointment{
		DoctorProfileID: doctor.ID,
		PatientUserID:   &joao.ID,
		ScheduledDate:   today,
		StartTime:       today.Add(9 * time.Hour),
		EndTime:         today.Add(9*time.Hour + 30*time.Minute),
		Modality:        "remote",
		Status:          "SCHEDULED",
	}
	if err := db.Where("doctor_profile_id = ? AND patient_user_id = ?", doctor.ID, joao.ID).FirstOrCreate(&ap1).Error; err != nil {
		return err
	}

	// Appointment 2: dependent beneficiary, access flows through the titular.
	ap2 := models.Appointment{
		DoctorProfileID: doctor.ID,
		BeneficiaryID:   &dependente.ID,
		ScheduledDate:   today,
		StartTime:       today.Add(10 * time.Hour),
		EndTime:         today.Add(10*time.Hour + 30*time.Minute),
		Modality:        "remote",
		Status:          "SCHEDULED",
	}
	if err := db.Where("doctor_profile_id = ? AND beneficiary_id = ?", doctor.ID, dependente.ID).FirstOrCreate(&ap2).Error; err != nil {
		return err
	}

	fmt.Printf("  appointment %d: doctor x João (direct)\n", ap1.ID)
	fmt.Printf("  appointment %d: doctor x Pedro (dependente de Maria)\n", ap2.ID)
	return nil
}

func upsertUser(db *gorm.DB, u *models.User) error {
	return db.Where("email = ?", u.Email).FirstOrCreate(u).Error
}
