package main

import (
	"time"

	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/config"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/constants"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/logger"
	"github.com/suzyprado85-cyber/portalunk2-sub001/internal/models"

	"github.com/shopspring/decimal"
)

// Seeds a demo roster: three DJs, three events in different stages of
// the payment lifecycle (overdue, settled, upcoming) and their
// contracts. Safe to run repeatedly.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to bootstrap default admin: %v", err)
	}

	var producer models.Account
	if err := models.DB.Where("is_super = ?", true).First(&producer).Error; err != nil {
		stdLog.Fatalf("No super account found, run the server once first: %v", err)
	}

	djs := []models.DJ{
		{
			Name:       "Rafael Monteiro",
			ArtistName: "RAFA MNT",
			Email:      "rafa@agency.local",
			Phone:      "+55 11 98888-0001",
			CNPJ:       "12.345.678/0001-90",
			BaseFee:    models.NewMoneyFromDecimal(decimal.NewFromInt(3500)),
			Genres:     "techno, house",
			Active:     true,
		},
		{
			Name:       "Beatriz Lemos",
			ArtistName: "BEA LMS",
			Email:      "bea@agency.local",
			Phone:      "+55 11 98888-0002",
			CNPJ:       "98.765.432/0001-10",
			BaseFee:    models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			Genres:     "melodic techno",
			Active:     true,
		},
		{
			Name:       "Diego Faria",
			ArtistName: "DG FARIA",
			Email:      "diego@agency.local",
			Phone:      "+55 11 98888-0003",
			CNPJ:       "11.222.333/0001-44",
			BaseFee:    models.NewMoneyFromDecimal(decimal.NewFromInt(2200)),
			Genres:     "drum and bass",
			Active:     false,
			Notes:      "on hiatus until next season",
		},
	}
	djIDs := map[string]uint{}
	for _, dj := range djs {
		var existing models.DJ
		if err := models.DB.Where("artist_name = ?", dj.ArtistName).First(&existing).Error; err != nil {
			if err := models.DB.Create(&dj).Error; err != nil {
				stdLog.Printf("Failed to create DJ %s: %v", dj.ArtistName, err)
				continue
			}
			stdLog.Printf("Created DJ: %s", dj.ArtistName)
			djIDs[dj.ArtistName] = dj.ID
		} else {
			stdLog.Printf("DJ already exists: %s", dj.ArtistName)
			djIDs[existing.ArtistName] = existing.ID
		}
	}

	now := time.Now()
	events := []models.Event{
		{
			Title:      "Warehouse Sessions #12",
			Date:       now.AddDate(0, 0, -14),
			Venue:      "Galpão 88",
			City:       "São Paulo",
			DJID:       djIDs["RAFA MNT"],
			ProducerID: producer.ID,
			CacheValue: models.NewMoneyFromDecimal(decimal.NewFromInt(3500)),
			Status:     constants.EventStatusCompleted,
		},
		{
			Title:      "Sunset Rooftop",
			Date:       now.AddDate(0, 0, -7),
			Venue:      "Terraço Norte",
			City:       "Rio de Janeiro",
			DJID:       djIDs["BEA LMS"],
			ProducerID: producer.ID,
			CacheValue: models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			Status:     constants.EventStatusCompleted,
		},
		{
			Title:      "Club Night: Deep Floor",
			Date:       now.AddDate(0, 1, 0),
			Venue:      "Subsolo Club",
			City:       "Curitiba",
			DJID:       djIDs["RAFA MNT"],
			ProducerID: producer.ID,
			CacheValue: models.NewMoneyFromDecimal(decimal.NewFromInt(4000)),
			Status:     constants.EventStatusConfirmed,
		},
	}
	eventIDs := map[string]uint{}
	for _, ev := range events {
		if ev.DJID == 0 {
			stdLog.Printf("Skipping event %s: DJ missing", ev.Title)
			continue
		}
		var existing models.Event
		if err := models.DB.Where("title = ?", ev.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&ev).Error; err != nil {
				stdLog.Printf("Failed to create event %s: %v", ev.Title, err)
				continue
			}
			stdLog.Printf("Created event: %s", ev.Title)
			eventIDs[ev.Title] = ev.ID
		} else {
			stdLog.Printf("Event already exists: %s", ev.Title)
			eventIDs[existing.Title] = existing.ID
		}
	}

	signedAt := now.AddDate(0, 0, -30)
	contracts := []models.Contract{
		{
			EventID:  eventIDs["Warehouse Sessions #12"],
			DJID:     djIDs["RAFA MNT"],
			Status:   constants.ContractStatusSigned,
			SignedAt: &signedAt,
		},
		{
			EventID: eventIDs["Sunset Rooftop"],
			DJID:    djIDs["BEA LMS"],
			Status:  constants.ContractStatusSigned,
		},
		{
			EventID: eventIDs["Club Night: Deep Floor"],
			DJID:    djIDs["RAFA MNT"],
			Status:  constants.ContractStatusSent,
		},
	}
	for _, contract := range contracts {
		if contract.EventID == 0 || contract.DJID == 0 {
			continue
		}
		var existing models.Contract
		if err := models.DB.Where("event_id = ?", contract.EventID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&contract).Error; err != nil {
				stdLog.Printf("Failed to create contract for event %d: %v", contract.EventID, err)
				continue
			}
			stdLog.Printf("Created contract for event %d", contract.EventID)
		} else {
			stdLog.Printf("Contract already exists for event %d", contract.EventID)
		}
	}

	paidAt := now.AddDate(0, 0, -5)
	payments := []models.Payment{
		{
			// due date in the past and still pending: shows up as overdue
			EventID:          eventIDs["Warehouse Sessions #12"],
			Amount:           models.NewMoneyFromDecimal(decimal.NewFromInt(3500)),
			CommissionAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(700)),
			Currency:         constants.SiteCurrencyDefault,
			Status:           constants.PaymentStatusPending,
			DueAt:            now.AddDate(0, 0, -10),
		},
		{
			EventID:          eventIDs["Sunset Rooftop"],
			Amount:           models.NewMoneyFromDecimal(decimal.NewFromInt(5000)),
			CommissionAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1000)),
			Currency:         constants.SiteCurrencyDefault,
			Status:           constants.PaymentStatusPaid,
			DueAt:            now.AddDate(0, 0, -6),
			PaidAt:           &paidAt,
		},
		{
			EventID:          eventIDs["Club Night: Deep Floor"],
			Amount:           models.NewMoneyFromDecimal(decimal.NewFromInt(4000)),
			CommissionAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(800)),
			Currency:         constants.SiteCurrencyDefault,
			Status:           constants.PaymentStatusPending,
			DueAt:            now.AddDate(0, 1, 7),
		},
	}
	for _, payment := range payments {
		if payment.EventID == 0 {
			continue
		}
		var existing models.Payment
		if err := models.DB.Where("event_id = ?", payment.EventID).First(&existing).Error; err != nil {
			if err := models.DB.Create(&payment).Error; err != nil {
				stdLog.Printf("Failed to create payment for event %d: %v", payment.EventID, err)
				continue
			}
			stdLog.Printf("Created payment for event %d (%s)", payment.EventID, payment.Status)
		} else {
			stdLog.Printf("Payment already exists for event %d", payment.EventID)
		}
	}

	stdLog.Printf("Seed finished")
}
