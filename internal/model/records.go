package model

import "time"

// Complaint is a citizen-filed complaint as returned by the backend.
type Complaint struct {
	ID          string    `json:"id"`
	CitizenID   int64     `json:"citizen_id"`
	Subject     string    `json:"subject"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// Fine is a monetary penalty issued against a citizen.
type Fine struct {
	ID        string    `json:"id"`
	CitizenID int64     `json:"citizen_id"`
	Reason    string    `json:"reason"`
	Amount    float64   `json:"amount"`
	Paid      bool      `json:"paid"`
	IssuedAt  time.Time `json:"issued_at"`
}

// CaseReport is an officer-filed report on a case.
type CaseReport struct {
	ID        string    `json:"id"`
	OfficerID int64     `json:"officer_id"`
	CaseID    string    `json:"case_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Suspect is a person of interest tracked by officers.
type Suspect struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// ChatMessage is one turn in a legal-assistant conversation.
type ChatMessage struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// PaymentHash is the signed hash returned by the backend for initiating
// a fine payment with the external gateway.
type PaymentHash struct {
	FineID string `json:"fine_id"`
	Hash   string `json:"hash"`
}
