package cli

import (
	"fmt"
	"io"

	"partnerdesk/internal/account"
	"partnerdesk/internal/directory"
)

func renderView(out io.Writer, view *directory.GroupedView) {
	groups := view.Groups()
	if len(groups) == 0 {
		fmt.Fprintln(out, "no partnerships match the current filters")
		return
	}
	fmt.Fprintf(out, "%d partnership(s) in %d department(s)\n", view.Total(), len(groups))
	for _, group := range groups {
		renderGroup(out, group)
	}
}

func renderGroup(out io.Writer, group *directory.Group) {
	fmt.Fprintf(out, "-- %s (%s) -- page %d/%d, %d total\n",
		group.Department().Label(), group.Department(),
		group.CurrentPage(), group.TotalPages(), group.Count(),
	)
	for _, rec := range group.Items() {
		fmt.Fprintf(out, "   %s", rec.BusinessName)
		if rec.Status != "" {
			fmt.Fprintf(out, " [%s]", rec.Status)
		}
		if rec.ContactPerson != "" {
			fmt.Fprintf(out, " contact=%s", rec.ContactPerson)
		}
		if rec.SchoolYear != "" {
			fmt.Fprintf(out, " sy=%s", rec.SchoolYear)
		}
		fmt.Fprintln(out)
	}
}

func renderPending(out io.Writer, users []account.User) {
	if len(users) == 0 {
		fmt.Fprintln(out, "no pending accounts")
		return
	}
	fmt.Fprintf(out, "%d pending account(s)\n", len(users))
	for _, u := range users {
		fmt.Fprintf(out, "   %s  %s <%s> role=%s", u.ID, u.FullName, u.Email, u.Role)
		if u.Department != "" {
			fmt.Fprintf(out, " dept=%s", u.Department)
		}
		fmt.Fprintln(out)
	}
}
