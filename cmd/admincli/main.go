// cmd/admincli/main.go
//
// Interactive console for managing administrator accounts. Runs against
// the same database and configuration as the API server.
package main

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/user"
	"github.com/your-org/storefront-backend/internal/infrastructure/database/postgres"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := postgres.NewConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	adminService := user.NewAdminService(db.GetDB(), cfg)
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println()
		fmt.Println("=== Admin Console ===")
		fmt.Println("1. Create new admin account")
		fmt.Println("2. Promote existing user to admin")
		fmt.Println("3. List users")
		fmt.Println("4. Exit")
		fmt.Print("Choose an option: ")

		choice := readLine(reader)

		switch choice {
		case "1":
			createAdmin(reader, adminService)
		case "2":
			promoteUser(reader, adminService)
		case "3":
			listUsers(adminService)
		case "4":
			fmt.Println("Bye.")
			return
		default:
			fmt.Println("Unknown option.")
		}
	}
}

func createAdmin(reader *bufio.Reader, adminService *user.AdminService) {
	fmt.Print("Email: ")
	email := readLine(reader)
	fmt.Print("Password: ")
	password := readLine(reader)
	fmt.Print("First name: ")
	firstName := readLine(reader)
	fmt.Print("Last name: ")
	lastName := readLine(reader)

	u, err := adminService.CreateAdmin(&user.CreateAdminRequest{
		Email:     email,
		Password:  password,
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		fmt.Printf("Failed to create admin: %v\n", err)
		return
	}

	fmt.Printf("Created admin %s (ID %d)\n", u.Email, u.ID)
}

func promoteUser(reader *bufio.Reader, adminService *user.AdminService) {
	fmt.Print("Email of user to promote: ")
	email := readLine(reader)

	u, err := adminService.PromoteToAdmin(email)
	if err != nil {
		fmt.Printf("Failed to promote user: %v\n", err)
		return
	}

	fmt.Printf("Promoted %s (ID %d) to admin\n", u.Email, u.ID)
}

func listUsers(adminService *user.AdminService) {
	users, err := adminService.ListUsers()
	if err != nil {
		fmt.Printf("Failed to list users: %v\n", err)
		return
	}

	fmt.Printf("%-5s %-35s %-25s %-6s %-6s\n", "ID", "Email", "Name", "Admin", "Active")
	for _, u := range users {
		fmt.Printf("%-5d %-35s %-25s %-6t %-6t\n", u.ID, u.Email, u.GetFullName(), u.IsAdmin, u.IsActive)
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}
