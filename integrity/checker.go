// ABOUTME: Data integrity checker over all record collections
// ABOUTME: Reports findings with severities and carries opt-in fixes that re-persist

package integrity

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jiale-0528/mgr-sop/db"
	"github.com/jiale-0528/mgr-sop/models"
)

// Severity of a finding. Errors break references or identity; warnings are
// suspicious values the data can live with.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityError {
		return "error"
	}
	return "warning"
}

// Finding is one detected problem. The fix closure, when present, repairs
// the record in the session's working copy; nothing touches the store until
// ApplyFixes.
type Finding struct {
	Collection string
	RecordID   string
	Field      string
	Severity   Severity
	Message    string

	fix func()
}

// Fixable reports whether the finding carries an automatic repair.
func (f Finding) Fixable() bool {
	return f.fix != nil
}

// Session holds working copies of every collection plus the findings of one
// checker run. Re-running Check after ApplyFixes should come back clean.
type Session struct {
	store *db.Store

	Customers []models.Customer
	Goals     []models.Goal
	Family    []models.FamilyMember
	KIV       []models.KIVItem
	Monthly   []models.MonthlyItem
	Visits    []models.Visit
	Referrals []models.Referral
	Events    []models.CalendarEvent

	Findings []Finding

	dirty map[string]bool
}

// Check loads every collection and runs the full rule set.
func Check(store *db.Store) (*Session, error) {
	s := &Session{store: store, dirty: make(map[string]bool)}

	var err error
	if s.Customers, err = store.ListCustomers(); err != nil {
		return nil, err
	}
	if s.Goals, err = store.ListGoals(); err != nil {
		return nil, err
	}
	if s.Family, err = store.ListFamily(); err != nil {
		return nil, err
	}
	if s.KIV, err = store.ListKIV(); err != nil {
		return nil, err
	}
	if s.Monthly, err = store.ListMonthly(); err != nil {
		return nil, err
	}
	if s.Visits, err = store.ListVisits(); err != nil {
		return nil, err
	}
	if s.Referrals, err = store.ListReferrals(); err != nil {
		return nil, err
	}
	if s.Events, err = store.ListCalendarEvents(); err != nil {
		return nil, err
	}

	s.checkIdentity()
	s.checkRequired()
	s.checkReferences()
	s.checkAges()
	s.checkNumbers()
	s.checkDates()
	return s, nil
}

// Errors counts error-severity findings.
func (s *Session) Errors() int {
	n := 0
	for _, f := range s.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Warnings counts warning-severity findings.
func (s *Session) Warnings() int {
	return len(s.Findings) - s.Errors()
}

// ApplyFixes runs every fix closure and persists the collections they
// touched. Findings without a fix are left for the agent to resolve.
func (s *Session) ApplyFixes() error {
	applied := 0
	for _, f := range s.Findings {
		if f.fix != nil {
			f.fix()
			applied++
		}
	}
	if applied == 0 {
		return nil
	}

	persist := map[string]interface{}{
		db.CollCustomers:      s.Customers,
		db.CollGoals:          s.Goals,
		db.CollFamily:         s.Family,
		db.CollKIV:            s.KIV,
		db.CollMonthly:        s.Monthly,
		db.CollVisits:         s.Visits,
		db.CollReferrals:      s.Referrals,
		db.CollCalendarEvents: s.Events,
	}
	for coll := range s.dirty {
		if err := s.store.Write(coll, persist[coll]); err != nil {
			return err
		}
	}
	log.Info("integrity fixes applied", "fixes", applied, "collections", len(s.dirty))
	return nil
}

func (s *Session) add(f Finding, coll string) {
	f.Collection = coll
	if f.fix != nil {
		inner := f.fix
		f.fix = func() {
			inner()
			s.dirty[coll] = true
		}
	}
	s.Findings = append(s.Findings, f)
}

// checkIdentity verifies every record has a unique non-empty id. Bad ids
// break lookups and deletes, so both cases are errors fixed with a fresh id.
func (s *Session) checkIdentity() {
	fixID := func(coll, label string, i int, get func(int) *string) {
		id := *get(i)
		msg := fmt.Sprintf("%s has no id", label)
		if id != "" {
			msg = fmt.Sprintf("%s has a duplicate id %s", label, id)
		}
		i2 := i
		s.add(Finding{
			RecordID: id,
			Field:    "id",
			Severity: SeverityError,
			Message:  msg,
			fix:      func() { *get(i2) = db.NewID() },
		}, coll)
	}

	scan := func(coll string, n int, label func(int) string, get func(int) *string) {
		seen := make(map[string]bool, n)
		for i := 0; i < n; i++ {
			id := *get(i)
			if id == "" || seen[id] {
				fixID(coll, label(i), i, get)
				continue
			}
			seen[id] = true
		}
	}

	scan(db.CollCustomers, len(s.Customers),
		func(i int) string { return "customer " + s.Customers[i].LifeAssuredName },
		func(i int) *string { return &s.Customers[i].ID })
	scan(db.CollGoals, len(s.Goals),
		func(i int) string { return "goal " + s.Goals[i].Title },
		func(i int) *string { return &s.Goals[i].ID })
	scan(db.CollFamily, len(s.Family),
		func(i int) string { return "family member " + s.Family[i].Name },
		func(i int) *string { return &s.Family[i].ID })
	scan(db.CollKIV, len(s.KIV),
		func(i int) string { return "KIV item " + s.KIV[i].Name },
		func(i int) *string { return &s.KIV[i].ID })
	scan(db.CollMonthly, len(s.Monthly),
		func(i int) string { return "monthly item " + s.Monthly[i].Name },
		func(i int) *string { return &s.Monthly[i].ID })
	scan(db.CollVisits, len(s.Visits),
		func(i int) string { return "visit " + s.Visits[i].Name },
		func(i int) *string { return &s.Visits[i].ID })
	scan(db.CollReferrals, len(s.Referrals),
		func(i int) string { return "referral " + s.Referrals[i].Name },
		func(i int) *string { return &s.Referrals[i].ID })
	scan(db.CollCalendarEvents, len(s.Events),
		func(i int) string { return "event " + s.Events[i].Title },
		func(i int) *string { return &s.Events[i].ID })
}

// checkRequired flags customer rows without a life assured name. They cannot
// be searched or grouped, and there is no value the checker could invent, so
// the finding carries no fix.
func (s *Session) checkRequired() {
	for _, c := range s.Customers {
		if c.LifeAssuredName != "" {
			continue
		}
		s.add(Finding{
			RecordID: c.ID,
			Field:    "lifeAssuredName",
			Severity: SeverityWarning,
			Message:  "customer row has no life assured name",
		}, db.CollCustomers)
	}
}

// checkReferences verifies family-tree links. A dangling owner is an error:
// the member is unreachable from any customer page. A dangling customerId is
// only a stale marketable flag, so a warning.
func (s *Session) checkReferences() {
	customerIDs := make(map[string]bool, len(s.Customers))
	for _, c := range s.Customers {
		customerIDs[c.ID] = true
	}

	for i := range s.Family {
		m := &s.Family[i]
		if m.ParentCustomerID != "" && !customerIDs[m.ParentCustomerID] {
			mm := m
			s.add(Finding{
				RecordID: m.ID,
				Field:    "parentCustomerId",
				Severity: SeverityError,
				Message: fmt.Sprintf("family member %s points at missing customer %s",
					m.Name, m.ParentCustomerID),
				fix: func() { mm.ParentCustomerID = "" },
			}, db.CollFamily)
		}
		if m.CustomerID != "" && !customerIDs[m.CustomerID] {
			mm := m
			s.add(Finding{
				RecordID: m.ID,
				Field:    "customerId",
				Severity: SeverityWarning,
				Message: fmt.Sprintf("family member %s is marked as customer %s which no longer exists",
					m.Name, m.CustomerID),
				fix: func() {
					mm.CustomerID = ""
					mm.IsExistingCustomer = false
				},
			}, db.CollFamily)
		}
	}
}

// checkAges flags non-numeric or out-of-range ages. The fix clears the
// field rather than guessing a value.
func (s *Session) checkAges() {
	flag := func(coll, id, label string, age *models.Age) {
		if !age.Present || age.InRange() {
			return
		}
		a := age
		s.add(Finding{
			RecordID: id,
			Field:    "age",
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s has invalid age %q", label, age.String()),
			fix:      func() { *a = models.Age{} },
		}, coll)
	}

	for i := range s.Customers {
		c := &s.Customers[i]
		flag(db.CollCustomers, c.ID, "customer "+c.LifeAssuredName, &c.Age)
	}
	for i := range s.Family {
		m := &s.Family[i]
		flag(db.CollFamily, m.ID, "family member "+m.Name, &m.Age)
	}
	for i := range s.Monthly {
		m := &s.Monthly[i]
		flag(db.CollMonthly, m.ID, "monthly item "+m.Name, &m.Age)
	}
	for i := range s.Visits {
		v := &s.Visits[i]
		flag(db.CollVisits, v.ID, "visit "+v.Name, &v.Age)
	}
	for i := range s.Referrals {
		r := &s.Referrals[i]
		flag(db.CollReferrals, r.ID, "referral "+r.Name, &r.Age)
	}
}

// checkNumbers flags negative money amounts. Fixes zero them.
func (s *Session) checkNumbers() {
	flag := func(coll, id, label, field string, v *float64) {
		if *v >= 0 {
			return
		}
		vv := v
		s.add(Finding{
			RecordID: id,
			Field:    field,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s has negative %s %.2f", label, field, *v),
			fix:      func() { *vv = 0 },
		}, coll)
	}

	for i := range s.Customers {
		c := &s.Customers[i]
		label := "customer " + c.LifeAssuredName
		flag(db.CollCustomers, c.ID, label, "premiumAmount", &c.PremiumAmount)
		flag(db.CollCustomers, c.ID, label, "coverage.life", &c.Coverage.Life)
		flag(db.CollCustomers, c.ID, label, "coverage.illness", &c.Coverage.Illness)
		flag(db.CollCustomers, c.ID, label, "coverage.accident", &c.Coverage.Accident)
		flag(db.CollCustomers, c.ID, label, "coverage.medical", &c.Coverage.Medical)
		flag(db.CollCustomers, c.ID, label, "coverage.hospital", &c.Coverage.Hospital)
		flag(db.CollCustomers, c.ID, label, "coverage.waive", &c.Coverage.Waive)
	}
	for i := range s.Goals {
		g := &s.Goals[i]
		label := "goal " + g.Title
		flag(db.CollGoals, g.ID, label, "amount", &g.Amount)
		flag(db.CollGoals, g.ID, label, "current", &g.Current)
	}
	for i := range s.KIV {
		k := &s.KIV[i]
		flag(db.CollKIV, k.ID, "KIV item "+k.Name, "premium", &k.Premium)
	}
	for i := range s.Monthly {
		m := &s.Monthly[i]
		flag(db.CollMonthly, m.ID, "monthly item "+m.Name, "premium", &m.Premium)
	}
	for i := range s.Visits {
		v := &s.Visits[i]
		flag(db.CollVisits, v.ID, "visit "+v.Name, "premium", &v.Premium)
	}
}

// checkDates flags date fields that did not parse. Fixes clear the field;
// the record keeps working and drops off date-driven views.
func (s *Session) checkDates() {
	flag := func(coll, id, label, field string, d *models.DateTime) {
		if !d.Present || d.Valid {
			return
		}
		dd := d
		s.add(Finding{
			RecordID: id,
			Field:    field,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s has unparseable %s %q", label, field, d.Raw),
			fix:      func() { *dd = models.DateTime{} },
		}, coll)
	}

	for i := range s.Goals {
		g := &s.Goals[i]
		flag(db.CollGoals, g.ID, "goal "+g.Title, "dueDate", &g.DueDate)
	}
	for i := range s.KIV {
		k := &s.KIV[i]
		label := "KIV item " + k.Name
		flag(db.CollKIV, k.ID, label, "lastMeeting", &k.LastMeeting)
		flag(db.CollKIV, k.ID, label, "nextMeeting", &k.NextMeeting)
	}
	for i := range s.Monthly {
		m := &s.Monthly[i]
		flag(db.CollMonthly, m.ID, "monthly item "+m.Name, "appointment", &m.Appointment)
	}
	for i := range s.Events {
		e := &s.Events[i]
		flag(db.CollCalendarEvents, e.ID, "event "+e.Title, "time", &e.Time)
	}

	// Text date fields are stored as entered; only validate the format.
	// The fix clears the field unless the caller supplies a replacement.
	flagText := func(coll, id, label, field string, v *string, repair string) {
		if *v == "" {
			return
		}
		if d := models.ParseDateTime(*v); d.Valid {
			return
		}
		vv := v
		s.add(Finding{
			RecordID: id,
			Field:    field,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s has unparseable %s %q", label, field, *v),
			fix:      func() { *vv = repair },
		}, coll)
	}

	for i := range s.Customers {
		c := &s.Customers[i]
		flagText(db.CollCustomers, c.ID, "customer "+c.LifeAssuredName,
			"effectiveDate", &c.EffectiveDate, "")
	}

	// A visit's date orders the report, so the fix substitutes today
	// instead of clearing and losing the row.
	today := time.Now().Format("2006-01-02")
	for i := range s.Visits {
		v := &s.Visits[i]
		flagText(db.CollVisits, v.ID, "visit "+v.Name, "date", &v.Date, today)
	}

	for i := range s.Referrals {
		r := &s.Referrals[i]
		label := "referral " + r.Name
		flagText(db.CollReferrals, r.ID, label, "firstMeetingDate", &r.FirstMeetingDate, "")
		flagText(db.CollReferrals, r.ID, label, "lastMeetingDate", &r.LastMeetingDate, "")
	}
}
