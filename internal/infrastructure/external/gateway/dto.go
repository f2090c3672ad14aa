// Package gateway implements the portal's two remote surfaces: the credential
// HTTP endpoint and the real-time student record channel. It owns the wire
// representation and maps it to domain types at the boundary.
package gateway

import (
	"encoding/json"

	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// RECORD CHANNEL WIRE TYPES
// ══════════════════════════════════════════════════════════════════════════════

// Channel event names. These are the server's vocabulary and never leak past
// this package.
const (
	EventGetStudent        = "getStudent"
	EventGetStudentDetails = "getStudentDetails"
	EventUpdateStudent     = "updateStudent"
	EventUpdateFeeStatus   = "updateFeeStatus"
)

// requestEnvelope frames one request on the record channel. RequestID
// correlates the acknowledgement with the request that caused it.
type requestEnvelope struct {
	RequestID string `json:"requestId"`
	Event     string `json:"event"`
	Data      any    `json:"data,omitempty"`
}

// Ack is the server's acknowledgement of a channel request. Data is left raw;
// each operation unmarshals the shape it expects.
type Ack struct {
	RequestID string          `json:"requestId"`
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     string          `json:"error,omitempty"`
}

// recordDTO is a student record as the server sends it. The server calls the
// name "sname" and the fee flag "fees".
type recordDTO struct {
	ID    string `json:"id"`
	Name  string `json:"sname"`
	Email string `json:"email"`
	Fees  bool   `json:"fees"`
}

// profileUpdateDTO is the updateStudent payload.
type profileUpdateDTO struct {
	ID    string `json:"id"`
	Name  string `json:"sname"`
	Email string `json:"email"`
}

// feeStatusDTO is the updateFeeStatus payload. Fees is always true; the flow
// only ever marks fees as paid.
type feeStatusDTO struct {
	ID   string `json:"id"`
	Fees bool   `json:"fees"`
}

// fetchOneDTO is the getStudent payload.
type fetchOneDTO struct {
	ID string `json:"id"`
}

// ══════════════════════════════════════════════════════════════════════════════
// CREDENTIAL ENDPOINT WIRE TYPES
// ══════════════════════════════════════════════════════════════════════════════

// signUpRequestDTO is the POST /auth/signup body.
type signUpRequestDTO struct {
	Name     string `json:"sname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequestDTO is the POST /auth/login body. ID holds whatever the user
// typed as their identifier.
type loginRequestDTO struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

// authResponseDTO is the success body of both credential operations.
type authResponseDTO struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// apiErrorDTO is the credential endpoint's error body.
type apiErrorDTO struct {
	Message string `json:"message"`
}

// Error implements the error interface.
func (e *apiErrorDTO) Error() string {
	return e.Message
}

// ══════════════════════════════════════════════════════════════════════════════
// MAPPERS
// ══════════════════════════════════════════════════════════════════════════════

// recordFromDTO maps a wire record to the domain representation.
func recordFromDTO(dto recordDTO) student.Record {
	return student.Record{
		ID:       student.ID(dto.ID),
		Name:     dto.Name,
		Email:    dto.Email,
		FeesPaid: student.FeeStatus(dto.Fees),
	}
}

// recordsFromDTO maps a wire record list, preserving server order.
func recordsFromDTO(dtos []recordDTO) []student.Record {
	records := make([]student.Record, 0, len(dtos))
	for _, dto := range dtos {
		records = append(records, recordFromDTO(dto))
	}
	return records
}

// profileUpdateToDTO maps a domain profile edit to the wire payload.
func profileUpdateToDTO(update student.ProfileUpdate) profileUpdateDTO {
	return profileUpdateDTO{
		ID:    update.ID.String(),
		Name:  update.Name,
		Email: update.Email,
	}
}

// credentialsFromDTO maps an auth response to domain credentials.
func credentialsFromDTO(dto authResponseDTO) *student.Credentials {
	return &student.Credentials{
		Token:     dto.Token,
		StudentID: student.ID(dto.UserID),
	}
}
