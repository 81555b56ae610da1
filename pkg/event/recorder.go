// Package event records domain mutations into the transactional outbox. A
// background worker drains the outbox and publishes to the message broker, so
// request handlers never talk to the broker directly.
package event

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/clinicagenda/clinic-api/internal/model"
	"github.com/clinicagenda/clinic-api/internal/repository"
)

// Event types emitted by the API
const (
	TypeClinicCreated     = "CLINIC_CREATED"
	TypeClinicDeleted     = "CLINIC_DELETED"
	TypeClinicMemberAdded = "CLINIC_MEMBER_ADDED"
	TypeDoctorUpsert      = "DOCTOR_UPSERT"
	TypeDoctorDeleted     = "DOCTOR_DELETED"
	TypeAppointmentBooked = "APPOINTMENT_BOOKED"
	TypeAppointmentCancel = "APPOINTMENT_CANCELLED"
)

type Recorder struct {
	outboxRepo repository.OutboxRepository
}

func NewRecorder(outboxRepo repository.OutboxRepository) *Recorder {
	return &Recorder{outboxRepo: outboxRepo}
}

// Record writes the event to the outbox. Failures are logged, not returned:
// event delivery is best-effort and must never fail the mutation that
// triggered it.
func (r *Recorder) Record(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to marshal outbox payload")
		return
	}

	if err := r.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}); err != nil {
		log.Error().Err(err).Str("event", eventType).Msg("failed to create outbox event")
	}
}
