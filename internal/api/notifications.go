package api

import (
	"context"
	"fmt"

	"github.com/ndtran/police-portal/internal/model"
)

// MyNotifications fetches the caller's full notification list. The
// backend returns newest-first; the order is preserved as delivered.
func (c *Client) MyNotifications(ctx context.Context) ([]model.Notification, error) {
	var list []model.Notification
	if err := c.Get(ctx, "/api/notifications/my", &list); err != nil {
		return nil, fmt.Errorf("fetching notifications: %w", err)
	}
	return list, nil
}

// MarkNotificationRead marks a single notification as read on the server.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/notifications/%s/read", id)
	if err := c.Put(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("marking notification %s read: %w", id, err)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification of the caller as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	if err := c.Put(ctx, "/api/notifications/read-all", nil, nil); err != nil {
		return fmt.Errorf("marking all notifications read: %w", err)
	}
	return nil
}

// SendNotification sends a directed message to another portal user.
func (c *Client) SendNotification(ctx context.Context, receiverID int64, message string) error {
	body := struct {
		ReceiverID int64  `json:"receiver_id"`
		Message    string `json:"message"`
	}{ReceiverID: receiverID, Message: message}

	if err := c.Post(ctx, "/api/notifications", body, nil); err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	return nil
}
