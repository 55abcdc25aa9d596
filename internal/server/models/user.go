package models

import "time"

type User struct {
	ID                   string
	Email                string
	Firstname            string
	Lastname             string
	PasswordHash         []byte
	Role                 string
	RGPDAccepted         bool
	CommercialUseConsent bool
	CreatedAt            time.Time
}
