// Package handler contains one handler per portal page. Handlers prompt and
// render through the terminal, call into the application layer, and return
// the next page to navigate to.
package handler

import (
	"github.com/feehub/student-fee-portal/internal/domain/session"
	"github.com/feehub/student-fee-portal/internal/domain/student"
)

// GatewayFactory builds a record gateway authenticated as the given session.
// A fresh gateway per page render keeps connection scoping and the token in
// one place.
type GatewayFactory func(sess session.Session) student.RecordGateway
