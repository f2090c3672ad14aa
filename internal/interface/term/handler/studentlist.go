package handler

import (
	"context"
	"strings"

	"github.com/feehub/student-fee-portal/internal/application/query"
	"github.com/feehub/student-fee-portal/internal/interface/term"
	"github.com/feehub/student-fee-portal/internal/interface/term/presenter"
)

// StudentList is the roster page: one fetch per visit, then local search,
// filter, and sort until the user navigates away.
type StudentList struct {
	gateways GatewayFactory
	roster   *presenter.RosterPresenter
}

// NewStudentList creates the roster page handler.
func NewStudentList(gateways GatewayFactory) *StudentList {
	return &StudentList{
		gateways: gateways,
		roster:   presenter.NewRosterPresenter(),
	}
}

// Handle implements term.Handler.
func (h *StudentList) Handle(ctx context.Context, t *term.Terminal) (string, error) {
	view := query.NewRosterView(h.gateways(t.Session))
	if err := view.Load(ctx); err != nil {
		if ctx.Err() != nil {
			return term.PageExit, ctx.Err()
		}
		t.Println(h.roster.FormatLoadError(err))
		return term.PageHome, nil
	}

	q := query.DefaultRosterQuery()
	for {
		records, err := view.Project(q)
		if err != nil {
			return term.PageExit, err
		}

		t.Divider()
		t.Println(h.roster.FormatTable(records))
		t.Println("Commands: search <text> | status all|paid|unpaid | sort id|name|email|fees [asc|desc] | clear | profile | payfee | back")

		line, err := t.Prompt("roster")
		if err != nil {
			return term.PageExit, err
		}

		cmd, args, _ := strings.Cut(line, " ")
		switch cmd {
		case "search":
			q.Search = strings.TrimSpace(args)
		case "status":
			next := q
			next.Status = query.StatusFilter(strings.TrimSpace(args))
			if err := next.Validate(); err != nil {
				t.Println("Unknown status. Use all, paid, or unpaid.")
				continue
			}
			q = next
		case "sort":
			key, dir, hasDir := strings.Cut(strings.TrimSpace(args), " ")
			next := q
			next.Key = query.SortKey(key)
			if hasDir {
				next.Dir = query.Direction(strings.TrimSpace(dir))
			}
			if err := next.Validate(); err != nil {
				t.Println("Unknown sort. Use id, name, email, or fees, optionally with asc or desc.")
				continue
			}
			q = next
		case "clear":
			q = query.DefaultRosterQuery()
		case "profile":
			return term.PageMyProfile, nil
		case "payfee":
			return term.PagePayFee, nil
		case "back":
			return term.PageHome, nil
		default:
			t.Println("Unknown command.")
		}
	}
}
