package dialogue

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"reservo/models"
	"reservo/services/availability"
)

// rule is one (predicate, handler) pair. Rules are evaluated in slice
// order and the first match wins, so relative position encodes priority:
// a direct provider mention outranks a greeting, state-specific handlers
// outrank the fallback. Insert new intents at the position their priority
// demands instead of re-deriving nested conditionals.
type rule struct {
	name string
	when func(*turn) bool
	run  func(*turn)
}

func (e *DefaultEngine) buildRules() []rule {
	return []rule{
		{name: "provider_mention", when: e.whenProviderMentioned, run: e.runProviderMentioned},
		{name: "greeting", when: e.whenGreeting, run: e.runGreeting},
		{name: "option_dispatch", when: e.whenOptionDispatch, run: e.runOptionDispatch},
		{name: "provider_chosen", when: e.whenProviderChosen, run: e.runProviderChosen},
		{name: "service_chosen", when: e.whenServiceChosen, run: e.runServiceChosen},
		{name: "slot_chosen", when: e.whenSlotChosen, run: e.runSlotChosen},
		{name: "collect_name", when: atStep(models.StepAskName), run: e.runCollectName},
		{name: "collect_surname", when: atStep(models.StepAskSurname), run: e.runCollectSurname},
		{name: "collect_email", when: atStep(models.StepAskEmail), run: e.runCollectEmail},
		{name: "collect_phone", when: atStep(models.StepAskPhone), run: e.runCollectPhone},
		{name: "confirm_details", when: e.whenConfirmDetails, run: e.runConfirmDetails},
		{name: "fallback", when: func(*turn) bool { return true }, run: e.runFallback},
	}
}

func atStep(step models.ConversationStep) func(*turn) bool {
	return func(t *turn) bool { return t.chatCtx.Step == step }
}

// --- rule 1: direct provider mention, any step ---

func (e *DefaultEngine) whenProviderMentioned(t *turn) bool {
	return e.findProvider(t.text) != nil
}

func (e *DefaultEngine) runProviderMentioned(t *turn) {
	e.offerProviderServices(t, e.findProvider(t.text))
}

func (e *DefaultEngine) offerProviderServices(t *turn, prov *models.Provider) {
	t.chatCtx.ProviderID = prov.ID

	t.nextStep = models.StepServiceSelection
	t.reply = fmt.Sprintf(promptProviderMatched, prov.Name)
	if t.chatCtx.Step == models.StepProviderSelection {
		t.reply = fmt.Sprintf(promptProviderServices, prov.Name)
	}
	t.metadata = &models.MessageMetadata{
		Type:     "service_chips",
		Services: e.Catalog.ServicesForProvider(prov.ID),
	}
}

// findProvider matches the input against each provider's full name or
// leading name token, the same containment heuristic the widget shipped
// with. Intent detection is deliberately this shallow.
func (e *DefaultEngine) findProvider(text string) *models.Provider {
	for _, p := range e.Catalog.ListProviders() {
		full := strings.ToLower(strings.TrimSpace(p.Name))
		fields := strings.Fields(full)
		if len(fields) == 0 {
			// Nameless provider from bad tenant data; never matchable.
			continue
		}
		if strings.Contains(text, full) || strings.Contains(text, fields[0]) {
			prov := p
			return &prov
		}
	}
	return nil
}

// --- rule 2: greeting at first contact ---

var greetingTokens = []string{"hola", "hello", "buenas"}

func (e *DefaultEngine) whenGreeting(t *turn) bool {
	if t.chatCtx.Step != "" && t.chatCtx.Step != models.StepGreeting {
		return false
	}
	if t.text == "/start" || len([]rune(t.text)) < 5 {
		return true
	}
	for _, tok := range greetingTokens {
		if strings.Contains(t.text, tok) {
			return true
		}
	}
	return false
}

func (e *DefaultEngine) runGreeting(t *turn) {
	t.nextStep = models.StepOptionsSelection
	t.reply = promptOptions
	t.metadata = &models.MessageMetadata{
		Type: "options_chips",
		Options: []models.Option{
			{Label: labelServices, Value: "services"},
			{Label: labelProviders, Value: "providers"},
		},
	}
}

// --- rule 3: options dispatch ---

func (e *DefaultEngine) whenOptionDispatch(t *turn) bool {
	if t.chatCtx.Step == models.StepOptionsSelection {
		return true
	}
	blank := t.chatCtx.Step == "" || t.chatCtx.Step == models.StepGreeting
	return blank && (strings.Contains(t.text, "servicio") || strings.Contains(t.text, "profesional"))
}

func (e *DefaultEngine) runOptionDispatch(t *turn) {
	if strings.Contains(t.text, "profesional") || strings.Contains(t.text, "providers") {
		t.nextStep = models.StepProviderSelection
		t.reply = promptProviders
		t.metadata = &models.MessageMetadata{
			Type:      "provider_chips",
			Providers: e.Catalog.ListProviders(),
		}
		return
	}
	// Ambiguous input defaults to the service catalog.
	t.nextStep = models.StepServiceSelection
	t.reply = promptServices
	t.metadata = &models.MessageMetadata{
		Type:     "service_chips",
		Services: e.Catalog.ListServices(),
	}
}

// --- rule 4: provider resolve at PROVIDER_SELECTION ---

// The mention rule already caught name-token matches at any step; this one
// only adds id-based resolution for structured chip values. Unresolved
// input falls through to the fallback.
func (e *DefaultEngine) whenProviderChosen(t *turn) bool {
	if t.chatCtx.Step != models.StepProviderSelection {
		return false
	}
	_, ok := e.Catalog.GetProvider(t.raw)
	return ok
}

func (e *DefaultEngine) runProviderChosen(t *turn) {
	prov, _ := e.Catalog.GetProvider(t.raw)
	e.offerProviderServices(t, prov)
}

// --- rule 5: service resolve at SERVICE_SELECTION ---

func (e *DefaultEngine) whenServiceChosen(t *turn) bool {
	return t.chatCtx.Step == models.StepServiceSelection && e.findService(t) != nil
}

func (e *DefaultEngine) runServiceChosen(t *turn) {
	svc := e.findService(t)
	t.chatCtx.ServiceID = svc.ID

	providerID := t.chatCtx.ProviderID
	if providerID == "" {
		if provs := e.Catalog.ProvidersForService(svc.ID); len(provs) > 0 {
			providerID = provs[0].ID
		}
	}

	slots := e.Slots.Generate(svc.ID, providerID, availability.DefaultOptions())
	t.chatCtx.OfferedSlots = slots
	t.chatCtx.SelectedSlot = nil

	t.nextStep = models.StepTimeSelection
	t.reply = fmt.Sprintf(promptServiceSlots, svc.Name)
	t.metadata = &models.MessageMetadata{
		Type:      "time_slots",
		TimeSlots: slots,
	}
}

func (e *DefaultEngine) findService(t *turn) *models.Service {
	if svc, ok := e.Catalog.GetService(t.raw); ok {
		return svc
	}
	for _, s := range e.Catalog.ListServices() {
		if strings.Contains(t.text, strings.ToLower(s.Name)) {
			svc := s
			return &svc
		}
	}
	return nil
}

// --- rule 6: slot pick ---

var timestampPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:Z|[+-]\d{2}:\d{2})`)

func (e *DefaultEngine) whenSlotChosen(t *turn) bool {
	return t.chatCtx.Step == models.StepTimeSelection || strings.Contains(t.text, "reservo para")
}

func (e *DefaultEngine) runSlotChosen(t *turn) {
	t.chatCtx.SelectedTimeText = t.raw

	// The canonical selection phrase embeds the slot start as RFC 3339;
	// pin the exact slot when it parses back against the offered list.
	if ts := timestampPattern.FindString(t.raw); ts != "" {
		if start, err := time.Parse(time.RFC3339, ts); err == nil {
			for i := range t.chatCtx.OfferedSlots {
				if t.chatCtx.OfferedSlots[i].Start.Equal(start) {
					slot := t.chatCtx.OfferedSlots[i]
					t.chatCtx.SelectedSlot = &slot
					break
				}
			}
		}
	}

	t.nextStep = models.StepAskName
	t.reply = promptAskName
}

// --- rule 7: sequential data collection ---

// Each collection step accepts the raw text verbatim; format validation is
// a collaborator's concern, not the dialogue's.

func (e *DefaultEngine) runCollectName(t *turn) {
	t.chatCtx.Name = t.raw
	t.nextStep = models.StepAskSurname
	t.reply = fmt.Sprintf(promptAskSurname, t.raw)
}

func (e *DefaultEngine) runCollectSurname(t *turn) {
	t.chatCtx.Surname = t.raw
	t.chatCtx.FullName = t.chatCtx.Name + " " + t.raw
	t.nextStep = models.StepAskEmail
	t.reply = promptAskEmail
}

func (e *DefaultEngine) runCollectEmail(t *turn) {
	t.chatCtx.Email = t.raw
	t.nextStep = models.StepAskPhone
	t.reply = promptAskPhone
}

func (e *DefaultEngine) runCollectPhone(t *turn) {
	t.chatCtx.Phone = t.raw
	t.nextStep = models.StepConfirmDetails
	t.reply = fmt.Sprintf(promptConfirmDetails, t.chatCtx.FullName, t.chatCtx.Email, t.raw)
	t.metadata = &models.MessageMetadata{
		Type: "options_chips",
		Options: []models.Option{
			{Label: labelConfirm, Value: "confirm"},
			{Label: labelRetry, Value: "retry"},
		},
	}
}

// --- rule 8: confirmation ---

var affirmatives = map[string]bool{
	"confirm":       true,
	"sí, confirmar": true,
	"si, confirmar": true,
	"sí":            true,
	"si":            true,
	"yes":           true,
	"ok":            true,
}

// Matching at CONFIRMATION too keeps a repeated affirmative idempotent:
// the same result, no second side effect (booking creation lives in the
// finalizer, not here).
func (e *DefaultEngine) whenConfirmDetails(t *turn) bool {
	return t.chatCtx.Step == models.StepConfirmDetails || t.chatCtx.Step == models.StepConfirmation
}

func (e *DefaultEngine) runConfirmDetails(t *turn) {
	if affirmatives[strings.TrimSpace(t.text)] {
		t.nextStep = models.StepConfirmation
		t.reply = promptConfirmed
		t.metadata = &models.MessageMetadata{Type: "booking_confirmation"}
		return
	}
	// Any other answer restarts the whole collection sequence. A full redo
	// rather than a per-field edit; see the confirm flow docs.
	t.chatCtx.ClearContact()
	t.nextStep = models.StepAskName
	t.reply = promptRetry
}

// --- rule 9: fallback ---

// The fallback never changes step and re-attaches whatever options the
// current step was offering, so the machine cannot stall.
func (e *DefaultEngine) runFallback(t *turn) {
	step := t.chatCtx.Step
	if step == "" {
		step = models.StepGreeting
	}
	t.nextStep = step
	t.reply = promptFallback

	switch step {
	case models.StepOptionsSelection:
		t.metadata = &models.MessageMetadata{
			Type: "options_chips",
			Options: []models.Option{
				{Label: labelServices, Value: "services"},
				{Label: labelProviders, Value: "providers"},
			},
		}
	case models.StepServiceSelection:
		services := e.Catalog.ListServices()
		if t.chatCtx.ProviderID != "" {
			services = e.Catalog.ServicesForProvider(t.chatCtx.ProviderID)
		}
		t.metadata = &models.MessageMetadata{Type: "service_chips", Services: services}
	case models.StepProviderSelection:
		t.metadata = &models.MessageMetadata{Type: "provider_chips", Providers: e.Catalog.ListProviders()}
	case models.StepTimeSelection:
		if len(t.chatCtx.OfferedSlots) > 0 {
			t.metadata = &models.MessageMetadata{Type: "time_slots", TimeSlots: t.chatCtx.OfferedSlots}
		}
	}
}
