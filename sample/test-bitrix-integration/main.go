package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sinedis-soft/dionis-next-level-sub001/internal/infra/integration/bitrix"
)

// Manual smoke check for the CRM webhook. Creates one throwaway lead in the
// portal configured via CRM_WEBHOOK_URL, so run it against a test portal only.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	webhookURL := os.Getenv("CRM_WEBHOOK_URL")
	if webhookURL == "" {
		log.Fatal("CRM_WEBHOOK_URL must be set")
	}

	client := bitrix.NewClient(webhookURL)

	fields := bitrix.LeadFields{
		Title:    "Заявка с сайта: Тест Интеграции",
		Name:     "Тест",
		LastName: "Интеграции",
		Phone:    "+77012345678",
		Email:    "integration-test@example.kz",
		Comments: "Smoke-check lead created by sample/test-bitrix-integration. Safe to delete.",
		SourceID: "WEB",
	}

	fmt.Println("Creating lead in Bitrix24...")
	fmt.Printf("   Name:  %s %s\n", fields.Name, fields.LastName)
	fmt.Printf("   Phone: %s\n", fields.Phone)
	fmt.Printf("   Email: %s\n", fields.Email)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	leadID, err := client.CreateLead(ctx, fields)
	if err != nil {
		log.Fatalf("create lead failed: %v", err)
	}

	fmt.Printf("Lead created, ID #%d\n", leadID)
	fmt.Println("Remember to delete the test lead from the CRM.")
}
