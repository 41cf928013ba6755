package api

import (
	"context"
	"fmt"

	"github.com/ndtran/police-portal/internal/model"
)

// MyComplaints fetches the complaints filed by the current citizen.
func (c *Client) MyComplaints(ctx context.Context) ([]model.Complaint, error) {
	var list []model.Complaint
	if err := c.Get(ctx, "/api/complaints/my", &list); err != nil {
		return nil, fmt.Errorf("fetching complaints: %w", err)
	}
	return list, nil
}

// FileComplaint submits a new complaint.
func (c *Client) FileComplaint(ctx context.Context, subject, description string) error {
	body := struct {
		Subject     string `json:"subject"`
		Description string `json:"description"`
	}{Subject: subject, Description: description}

	if err := c.Post(ctx, "/api/complaints", body, nil); err != nil {
		return fmt.Errorf("filing complaint: %w", err)
	}
	return nil
}

// MyFines fetches the fines issued against the current citizen.
func (c *Client) MyFines(ctx context.Context) ([]model.Fine, error) {
	var list []model.Fine
	if err := c.Get(ctx, "/api/fines/my", &list); err != nil {
		return nil, fmt.Errorf("fetching fines: %w", err)
	}
	return list, nil
}

// FinePaymentHash requests the signed payment hash for a fine from the
// backend's payment endpoint.
func (c *Client) FinePaymentHash(ctx context.Context, fineID string) (model.PaymentHash, error) {
	var hash model.PaymentHash
	path := fmt.Sprintf("/api/fines/%s/payment-hash", fineID)
	if err := c.Get(ctx, path, &hash); err != nil {
		return model.PaymentHash{}, fmt.Errorf("fetching payment hash for fine %s: %w", fineID, err)
	}
	return hash, nil
}

// Reports fetches case reports visible to the current officer or admin.
func (c *Client) Reports(ctx context.Context) ([]model.CaseReport, error) {
	var list []model.CaseReport
	if err := c.Get(ctx, "/api/reports", &list); err != nil {
		return nil, fmt.Errorf("fetching reports: %w", err)
	}
	return list, nil
}

// FileReport submits a new case report.
func (c *Client) FileReport(ctx context.Context, caseID, title, body string) error {
	payload := struct {
		CaseID string `json:"case_id"`
		Title  string `json:"title"`
		Body   string `json:"body"`
	}{CaseID: caseID, Title: title, Body: body}

	if err := c.Post(ctx, "/api/reports", payload, nil); err != nil {
		return fmt.Errorf("filing report: %w", err)
	}
	return nil
}

// Suspects fetches the suspect registry visible to officers and admins.
func (c *Client) Suspects(ctx context.Context) ([]model.Suspect, error) {
	var list []model.Suspect
	if err := c.Get(ctx, "/api/suspects", &list); err != nil {
		return nil, fmt.Errorf("fetching suspects: %w", err)
	}
	return list, nil
}
