package scheduler

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/okwaro/dutyroster/pkg/core/model"
	"github.com/okwaro/dutyroster/pkg/db"
)

const (
	// DefaultLookbackDays is the rotation window used when none is configured
	DefaultLookbackDays = 90

	// DefaultHospitalityCount is how many hospitality picks a roster gets
	DefaultHospitalityCount = 2

	// SocialMediaStaleness is the score ceiling for handing social media to
	// the preferred person. At or above it they have carried the role too
	// recently and the pick falls back to normal rotation.
	SocialMediaStaleness = 5.0

	dateLayout = "2006-01-02"
)

// Store defines the database operations the engine needs: reference data
// and history through the shared store interfaces, plus the present-people
// read. Write-back goes through RosterStore.
type Store interface {
	db.CatalogueStore
	db.RosterStore

	GetPresentPeople(ctx context.Context) ([]model.Person, error)
}

// Config tunes one Scheduler. Zero values fall back to the package defaults.
type Config struct {
	LookbackDays     int
	HospitalityCount int

	// SocialMediaPreferred is the display name of the person who gets first
	// refusal on social media, subject to the staleness check. Empty means
	// no preference.
	SocialMediaPreferred string
}

func (c Config) withDefaults() Config {
	if c.LookbackDays <= 0 {
		c.LookbackDays = DefaultLookbackDays
	}
	if c.HospitalityCount <= 0 {
		c.HospitalityCount = DefaultHospitalityCount
	}
	return c
}

// Scheduler generates duty rosters. It holds no state between runs; every
// Generate call re-reads history and works from a fresh assigned set.
type Scheduler struct {
	store  Store
	scorer *Scorer
	logger *zap.Logger
	cfg    Config
}

// New creates a Scheduler with the default random tie-break scorer
func New(store Store, logger *zap.Logger, cfg Config) *Scheduler {
	return NewWithScorer(store, logger, cfg, NewScorer())
}

// NewWithScorer creates a Scheduler with an explicit scorer, which tests
// use to pin the tie-break term
func NewWithScorer(store Store, logger *zap.Logger, cfg Config, scorer *Scorer) *Scheduler {
	return &Scheduler{
		store:  store,
		scorer: scorer,
		logger: logger,
		cfg:    cfg.withDefaults(),
	}
}

// eventPick pairs a filled slot with its person, keeping the underlying
// role name that persistence resolves against the catalogue
type eventPick struct {
	slot   Slot
	person model.Person
}

// Generate produces the roster for the target date. It aborts with a
// PreconditionError when the reference data cannot support any roster at
// all; individual unfillable slots are skipped with a warning instead.
// When save is true the roster is also written back, but write-back
// failures are logged and swallowed: the in-memory result stands.
func (s *Scheduler) Generate(ctx context.Context, target time.Time, save bool) (*model.RosterResult, error) {
	s.logger.Info("Generating roster",
		zap.String("date", target.Format(dateLayout)),
		zap.Int("lookback_days", s.cfg.LookbackDays),
		zap.Bool("save", save))

	// Step 1: validate preconditions
	events, err := s.store.GetActiveEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	if len(events) == 0 {
		return nil, preconditionf("no active events defined")
	}

	roles, err := s.store.GetRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch roles: %w", err)
	}
	if len(roles) == 0 {
		return nil, preconditionf("no roles defined")
	}

	people, err := s.store.GetPresentPeople(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch people: %w", err)
	}
	if len(people) == 0 {
		return nil, preconditionf("no people marked present")
	}

	// Active events are processed in stable ascending-id order
	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })

	s.logger.Debug("Preconditions satisfied",
		zap.Int("events", len(events)),
		zap.Int("roles", len(roles)),
		zap.Int("people", len(people)))

	// Step 2: load rotation history
	history, err := LoadHistory(ctx, s.store, target, s.cfg.LookbackDays)
	if err != nil {
		return nil, err
	}

	r := newRun(history, people, s.scorer, s.logger)

	// Steps 3-4: leadership
	producer, err := r.selectFlagged(roleProducer, func(p model.Person) bool { return p.IsProducer })
	if err != nil {
		return nil, err
	}
	s.logger.Info("Producer selected", zap.String("name", producer.FullName()))

	assistant, err := r.selectFlagged(roleAssistantProducer, func(p model.Person) bool { return p.IsAssistantProducer })
	if err != nil {
		return nil, err
	}
	s.logger.Info("Assistant producer selected", zap.String("name", assistant.FullName()))

	// Step 5: event role slots
	picksByEvent := make([][]eventPick, len(events))
	for i, event := range events {
		for _, slot := range EventSlots {
			person, ok := r.assignSlot(slot.Label, slot.Role)
			if !ok {
				s.logger.Warn("No eligible candidate for slot",
					zap.Int64("event_id", event.ID),
					zap.String("event", event.Name),
					zap.String("label", slot.Label),
					zap.String("role", slot.Role))
				continue
			}
			picksByEvent[i] = append(picksByEvent[i], eventPick{slot: slot, person: person})
		}
	}

	// Step 6: hospitality team, up to the configured count
	hospitality := make([]model.Person, 0, s.cfg.HospitalityCount)
	for len(hospitality) < s.cfg.HospitalityCount {
		candidates := r.eligible(roleHospitality)
		if len(candidates) == 0 {
			break
		}
		chosen := r.pickLowest(candidates, roleHospitality)
		r.take(chosen.ID)
		hospitality = append(hospitality, chosen)
	}
	if len(hospitality) < s.cfg.HospitalityCount {
		s.logger.Warn("Hospitality team short of target",
			zap.Int("selected", len(hospitality)),
			zap.Int("target", s.cfg.HospitalityCount))
	}

	// Step 7: social media, at most one person
	socialMedia := s.selectSocialMedia(r)

	// Step 8: assemble the result
	result := &model.RosterResult{
		Date:              target.Format(dateLayout),
		Producer:          model.PersonRef{ID: producer.ID, Name: producer.FullName()},
		AssistantProducer: model.PersonRef{ID: assistant.ID, Name: assistant.FullName()},
		Events:            make([]model.EventRoster, len(events)),
		Hospitality:       make([]string, 0, len(hospitality)),
		SocialMedia:       make([]string, 0, len(socialMedia)),
	}
	for i, event := range events {
		roster := model.EventRoster{
			EventID:     event.ID,
			EventName:   event.Name,
			Assignments: make([]model.SlotAssignment, 0, len(picksByEvent[i])),
		}
		for _, pick := range picksByEvent[i] {
			roster.Assignments = append(roster.Assignments, model.SlotAssignment{
				Role:     pick.slot.Label,
				Name:     pick.person.FullName(),
				PersonID: pick.person.ID,
			})
		}
		result.Events[i] = roster
	}
	for _, p := range hospitality {
		result.Hospitality = append(result.Hospitality, p.FullName())
	}
	for _, p := range socialMedia {
		result.SocialMedia = append(result.SocialMedia, p.FullName())
	}

	// Step 9: optional write-back. Failures here never invalidate the
	// roster already computed.
	if save {
		s.persist(ctx, target, events, roles, picksByEvent, producer, assistant, hospitality, socialMedia)
	}

	s.logger.Info("Roster generated",
		zap.String("date", result.Date),
		zap.Int("events", len(result.Events)),
		zap.Int("hospitality", len(result.Hospitality)),
		zap.Int("social_media", len(result.SocialMedia)))

	return result, nil
}

// selectFlagged picks the least-loaded unassigned person carrying a
// leadership flag. Leadership is mandatory: no candidate is a hard failure.
func (r *run) selectFlagged(pseudoRole string, flagged func(model.Person) bool) (model.Person, error) {
	candidates := make([]model.Person, 0)
	for _, p := range r.pool {
		if flagged(p) && !r.isTaken(p.ID) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		switch pseudoRole {
		case roleProducer:
			return model.Person{}, preconditionf("no producer available among present people")
		default:
			return model.Person{}, preconditionf("no assistant producer available among present people")
		}
	}

	chosen := r.pickLowest(candidates, pseudoRole)
	r.take(chosen.ID)
	return chosen, nil
}

// selectSocialMedia prefers the configured person when they are eligible,
// unassigned and not stale for the role; otherwise it falls back to the
// normal lowest-score pick. Returns at most one person.
func (s *Scheduler) selectSocialMedia(r *run) []model.Person {
	candidates := r.eligible(roleSocialMedia)
	if len(candidates) == 0 {
		s.logger.Warn("No eligible candidate for social media")
		return nil
	}

	var chosen model.Person
	found := false

	if s.cfg.SocialMediaPreferred != "" {
		for _, c := range candidates {
			if !strings.EqualFold(c.FullName(), s.cfg.SocialMediaPreferred) {
				continue
			}
			score := s.scorer.Score(c.ID, roleSocialMedia, r.history)
			if score < SocialMediaStaleness {
				chosen = c
				found = true
			} else {
				s.logger.Debug("Preferred social media person is stale, rotating",
					zap.String("name", c.FullName()),
					zap.Float64("score", score))
			}
			break
		}
	}

	if !found {
		chosen = r.pickLowest(candidates, roleSocialMedia)
	}

	r.take(chosen.ID)
	return []model.Person{chosen}
}

// persist writes the generated roster back through the store. Each active
// event gets a (event, date) container; leadership and special-role picks
// attach to the first event's container so their pseudo-roles feed future
// rotation scoring. Rows whose role has no catalogue entry are skipped.
func (s *Scheduler) persist(
	ctx context.Context,
	target time.Time,
	events []model.Event,
	roles []model.Role,
	picksByEvent [][]eventPick,
	producer, assistant model.Person,
	hospitality, socialMedia []model.Person,
) {
	roleByKey := make(map[string]model.Role, len(roles))
	for _, role := range roles {
		roleByKey[RoleKey(role.Name)] = role
	}

	date := target.Format(dateLayout)
	saves := make([]db.RosterSave, len(events))
	for i, event := range events {
		saves[i] = db.RosterSave{EventID: event.ID, Date: date}
		for _, pick := range picksByEvent[i] {
			role, ok := resolveRole(roleByKey, pick.slot.Role)
			if !ok {
				s.logger.Warn("Role missing from catalogue, not persisting slot",
					zap.String("role", pick.slot.Role))
				continue
			}
			saves[i].Rows = append(saves[i].Rows, db.AssignmentRow{
				RoleID:   role.ID,
				PersonID: pick.person.ID,
			})
		}
	}

	appendSpecial := func(pseudoRole string, p model.Person) {
		role, ok := resolveRole(roleByKey, pseudoRole)
		if !ok {
			s.logger.Warn("Pseudo-role missing from catalogue, not persisting pick",
				zap.String("role", pseudoRole),
				zap.String("name", p.FullName()))
			return
		}
		saves[0].Rows = append(saves[0].Rows, db.AssignmentRow{
			RoleID:   role.ID,
			PersonID: p.ID,
		})
	}
	appendSpecial(roleProducer, producer)
	appendSpecial(roleAssistantProducer, assistant)
	for _, p := range hospitality {
		appendSpecial(roleHospitality, p)
	}
	for _, p := range socialMedia {
		appendSpecial(roleSocialMedia, p)
	}

	if err := s.store.SaveRoster(ctx, saves); err != nil {
		s.logger.Error("Failed to save roster, returning in-memory result only", zap.Error(err))
	}
}

// resolveRole looks a role up by normalised name, treating underscores in
// pseudo-role keys as spaces so "assistant_producer" matches a catalogue
// role named "Assistant Producer".
func resolveRole(roleByKey map[string]model.Role, name string) (model.Role, bool) {
	key := RoleKey(name)
	if role, ok := roleByKey[key]; ok {
		return role, true
	}
	role, ok := roleByKey[strings.ReplaceAll(key, "_", " ")]
	return role, ok
}
