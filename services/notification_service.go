package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"salonbook-backend/config"
	"salonbook-backend/models"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// Queue names consumed by the notification workers.
const (
	BookingCreatedQueue   = "booking.created"
	BookingCancelledQueue = "booking.cancelled"
)

type BookingEvent struct {
	AppointmentID string    `json:"appointment_id"`
	ShopID        string    `json:"shop_id"`
	CustomerID    string    `json:"customer_id"`
	Status        string    `json:"status"`
	Total         float64   `json:"total"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type NotificationService struct {
	ch     *amqp.Channel
	client *twilio.RestClient
}

// NewNotificationService declares the booking queues and wires the Twilio
// client. A nil connection degrades to log-only publishing so the API can
// still serve bookings when the broker is down.
func NewNotificationService(conn *amqp.Connection) *NotificationService {
	s := &NotificationService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: os.Getenv("TWILIO_ACCOUNT_SID"),
			Password: os.Getenv("TWILIO_AUTH_TOKEN"),
		}),
	}

	if conn == nil {
		config.Log.Warn("RabbitMQ unavailable, booking events will only be logged")
		return s
	}

	ch, err := conn.Channel()
	if err != nil {
		config.Log.Errorf("Failed to open channel: %v", err)
		return s
	}
	for _, queue := range []string{BookingCreatedQueue, BookingCancelledQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			config.Log.Errorf("Failed to declare queue %s: %v", queue, err)
			return s
		}
	}
	s.ch = ch
	return s
}

func NewMQConn(url string) (*amqp.Connection, error) {
	return amqp.Dial(url)
}

func (s *NotificationService) publish(queue string, message any) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if s.ch == nil {
		config.Log.Infow("booking event (no broker)", "queue", queue, "body", string(body))
		return nil
	}

	err = s.ch.PublishWithContext(
		context.Background(),
		"",
		queue,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message to queue %s: %w", queue, err)
	}
	return nil
}

func (s *NotificationService) BookingCreated(appointment *models.Appointment) {
	event := BookingEvent{
		AppointmentID: appointment.ID.String(),
		ShopID:        appointment.ShopID.String(),
		CustomerID:    appointment.CustomerID.String(),
		Status:        appointment.Status,
		Total:         appointment.Total,
		OccurredAt:    time.Now(),
	}
	if err := s.publish(BookingCreatedQueue, event); err != nil {
		config.Log.Errorf("Failed to publish booking.created for %s: %v", appointment.ID, err)
	}
}

func (s *NotificationService) BookingCancelled(appointment *models.Appointment) {
	event := BookingEvent{
		AppointmentID: appointment.ID.String(),
		ShopID:        appointment.ShopID.String(),
		CustomerID:    appointment.CustomerID.String(),
		Status:        appointment.Status,
		Total:         appointment.Total,
		OccurredAt:    time.Now(),
	}
	if err := s.publish(BookingCancelledQueue, event); err != nil {
		config.Log.Errorf("Failed to publish booking.cancelled for %s: %v", appointment.ID, err)
	}
}

// SendSMS delivers a message via Twilio.
func (s *NotificationService) SendSMS(phone, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetBody(body)
	params.SetTo(phone)
	params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}
	if resp.Sid != nil {
		config.Log.Infof("Message sent to %s, SID: %s", phone, *resp.Sid)
	} else {
		config.Log.Infof("Message sent to %s, but no SID returned", phone)
	}
	return nil
}
