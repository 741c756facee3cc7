package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"fintrack/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Creates or updates a household member and their balance row. Used for
// first-time setup and passcode resets.
func main() {
	role := flag.String("role", "", "member role (husband or wife)")
	name := flag.String("name", "", "display name")
	passcode := flag.String("passcode", "", "6-digit login passcode")
	salaryDate := flag.Int("salary-date", 25, "day of month salary lands")
	salaryAmount := flag.Float64("salary-amount", 0, "expected monthly salary in RM")
	opening := flag.Float64("opening-balance", 0, "opening bank balance in RM")
	flag.Parse()

	if !models.ValidRole(*role) {
		fmt.Fprintln(os.Stderr, "usage: create_user -role husband|wife -name NAME -passcode NNNNNN [-salary-date D] [-salary-amount RM] [-opening-balance RM]")
		os.Exit(2)
	}
	if len(*passcode) != 6 {
		log.Fatal("passcode must be exactly 6 digits")
	}
	if *name == "" {
		*name = strings.ToUpper((*role)[:1]) + (*role)[1:]
	}

	dsn := os.Getenv("DB_DSN")
	if strings.TrimSpace(dsn) == "" {
		log.Fatal("DB_DSN not set in environment")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}

	hpw, err := bcrypt.GenerateFromPassword([]byte(*passcode), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt failed: %v", err)
	}

	var user models.User
	if err := db.Where("role = ?", *role).First(&user).Error; err == nil {
		user.Name = *name
		user.PasscodeHash = hpw
		user.SalaryDate = *salaryDate
		user.SalaryAmount = *salaryAmount
		if err := db.Save(&user).Error; err != nil {
			log.Fatalf("failed to update user: %v", err)
		}
		fmt.Printf("updated %s (id=%d)\n", *role, user.ID)
	} else {
		user = models.User{
			Name: *name, Role: *role, PasscodeHash: hpw,
			SalaryDate: *salaryDate, SalaryAmount: *salaryAmount,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("failed to create user: %v", err)
		}
		fmt.Printf("created %s (id=%d)\n", *role, user.ID)
	}

	var bal models.Balance
	if err := db.Where(`"user" = ?`, *role).First(&bal).Error; err != nil {
		bal = models.Balance{User: *role, Bank: *opening, OpeningBalance: *opening}
		bal.Recompute()
		if err := db.Create(&bal).Error; err != nil {
			log.Fatalf("failed to create balance: %v", err)
		}
		fmt.Printf("created balance for %s at %.2f\n", *role, bal.Total)
	}
}
