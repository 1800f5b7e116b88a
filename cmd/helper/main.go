package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"imovia/internal/utils/logger"

	"golang.org/x/crypto/bcrypt"
)

// Small operator CLI for producing and checking bcrypt hashes, e.g.
// when setting SUPERADMIN_PASSWORD or verifying a stored hash.
func main() {
	var log = logger.New("helper")
	log.Info("🔑 Starting password hash helper CLI")

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Enter 'h' to hash, 'v' to verify, or 'q' to quit: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)

		if choice == "q" {
			log.Info("👋 Exiting helper CLI")
			break
		}

		if choice == "h" {
			fmt.Print("Enter the password to hash: ")
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(input)

			hash, err := bcrypt.GenerateFromPassword([]byte(input), bcrypt.DefaultCost)
			if err != nil {
				log.Error("❌ Hashing failed", err)
			} else {
				log.Success("✅ Hash: %s", string(hash))
			}
		} else if choice == "v" {
			fmt.Print("Enter the stored hash: ")
			hash, _ := reader.ReadString('\n')
			fmt.Print("Enter the password to check: ")
			password, _ := reader.ReadString('\n')

			err := bcrypt.CompareHashAndPassword(
				[]byte(strings.TrimSpace(hash)),
				[]byte(strings.TrimSpace(password)),
			)
			if err != nil {
				log.Warn("⚠️ Password does not match the hash")
			} else {
				log.Success("✅ Password matches the hash")
			}
		} else {
			log.Warn("⚠️ Invalid choice. Please enter 'h', 'v', or 'q'.")
		}
	}
}
