// Package dashboard orchestrates the main view: the initial three-way load,
// the push subscriptions that keep it live, and user-initiated alert
// creation.
package dashboard

import (
	"encoding/json"
	"sync"

	"github.com/cyclopcam/logs"
	"github.com/gorilla/websocket"

	"github.com/Frozzzo/SeguridadUrbana/internal/push"
	"github.com/Frozzzo/SeguridadUrbana/internal/session"
	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

// Server-emitted push events the dashboard subscribes to.
const (
	EventNewAlert            = "newAlert"
	EventCameraStatusUpdated = "cameraStatusUpdated"
)

// API is the slice of the request client that the dashboard needs.
type API interface {
	GetCameras(token string) ([]models.Camera, error)
	GetAlerts(token string) ([]models.Alert, error)
	GetEmergencyContacts(token string) ([]models.EmergencyContact, error)
	CreateAlert(token string, req models.CreateAlertRequest) (*models.Alert, error)
}

// PushChannel is the slice of the push client that the dashboard needs.
type PushChannel interface {
	Connect() (*websocket.Conn, error)
	Disconnect()
	On(event string, handler push.Handler)
	Off(event string)
}

// Notifier stands in for the platform notification surface. The cmd layer
// supplies a terminal implementation when the user opted in; nil means
// notifications were never enabled.
type Notifier interface {
	Notify(title, body string)
}

// Phase is the dashboard lifecycle. It starts in Loading and moves to Ready
// once the initial fetches settle, whether they succeeded or not. There is
// no error phase: a failed load degrades to stale or empty collections.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
)

// Controller owns the dashboard state. All mutations (initial load, push
// events, alert creation) serialize through one mutex; the push handlers run
// on the channel's reader goroutine.
type Controller struct {
	log      logs.Log
	api      API
	sess     *session.Session
	channel  PushChannel
	notifier Notifier

	mu       sync.Mutex
	phase    Phase
	cameras  []models.Camera
	alerts   []models.Alert
	contacts []models.EmergencyContact
	onChange func()
}

func NewController(log logs.Log, api API, sess *session.Session, channel PushChannel, notifier Notifier) *Controller {
	return &Controller{
		log:      log,
		api:      api,
		sess:     sess,
		channel:  channel,
		notifier: notifier,
		phase:    PhaseLoading,
	}
}

// OnChange registers a hook invoked after every state change. The live view
// uses it to redraw.
func (c *Controller) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onChange = fn
}

// Start registers the push subscriptions, opens the connection and runs the
// initial load. A push connection failure is logged and otherwise ignored;
// the dashboard still works, just without live updates.
func (c *Controller) Start() {
	c.channel.On(EventNewAlert, c.handleNewAlert)
	c.channel.On(EventCameraStatusUpdated, c.handleCameraStatus)

	if _, err := c.channel.Connect(); err != nil {
		c.log.Errorf("Error connecting push channel: %v", err)
	}

	c.Load()
}

// Stop detaches the push connection. In-flight fetches are not cancelled;
// their results land in state nobody will read again.
func (c *Controller) Stop() {
	c.channel.Disconnect()
}

// Load fetches cameras, alerts and contacts concurrently and replaces each
// collection wholesale. Without a token it does nothing. A failed fetch is
// logged and leaves that one collection as it was; loading ends either way.
func (c *Controller) Load() {
	defer c.finishLoading()

	token := c.sess.Token()
	if token == "" {
		return
	}

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		cameras, err := c.api.GetCameras(token)
		if err != nil {
			c.log.Errorf("Error loading cameras: %v", err)
			return
		}
		c.mu.Lock()
		c.cameras = cameras
		c.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		alerts, err := c.api.GetAlerts(token)
		if err != nil {
			c.log.Errorf("Error loading alerts: %v", err)
			return
		}
		c.mu.Lock()
		c.alerts = alerts
		c.mu.Unlock()
	}()

	go func() {
		defer wg.Done()
		contacts, err := c.api.GetEmergencyContacts(token)
		if err != nil {
			c.log.Errorf("Error loading emergency contacts: %v", err)
			return
		}
		c.mu.Lock()
		c.contacts = contacts
		c.mu.Unlock()
	}()

	wg.Wait()
}

func (c *Controller) finishLoading() {
	c.mu.Lock()
	c.phase = PhaseReady
	fn := c.onChange
	c.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// CreateAlert posts a new community alert, then re-runs the full load. There
// is no optimistic local insert: the alert appears once the reload replaces
// the list, superseding anything the push channel delivered in between.
func (c *Controller) CreateAlert(alertType, message, location string) error {
	token := c.sess.Token()
	if token == "" {
		return nil
	}

	_, err := c.api.CreateAlert(token, models.CreateAlertRequest{
		Type:     alertType,
		Message:  message,
		Location: location,
	})
	if err != nil {
		c.log.Errorf("Error creating alert: %v", err)
		return err
	}

	c.Load()
	return nil
}

// handleNewAlert prepends the pushed alert. No dedupe by id and no ordering
// check against existing entries; the list is push-arrival order.
func (c *Controller) handleNewAlert(data json.RawMessage) {
	var alert models.Alert
	if err := json.Unmarshal(data, &alert); err != nil {
		c.log.Errorf("Dropping malformed newAlert event: %v", err)
		return
	}

	c.mu.Lock()
	c.alerts = append([]models.Alert{alert}, c.alerts...)
	fn := c.onChange
	c.mu.Unlock()

	if c.notifier != nil {
		c.notifier.Notify("Nueva Alerta", alert.Message)
	}
	if fn != nil {
		fn()
	}
}

// handleCameraStatus replaces the one camera whose id matches the pushed
// entry. An update for an unknown id is dropped, never inserted.
func (c *Controller) handleCameraStatus(data json.RawMessage) {
	var camera models.Camera
	if err := json.Unmarshal(data, &camera); err != nil {
		c.log.Errorf("Dropping malformed cameraStatusUpdated event: %v", err)
		return
	}

	c.mu.Lock()
	patched := false
	for i := range c.cameras {
		if c.cameras[i].ID == camera.ID {
			c.cameras[i] = camera
			patched = true
			break
		}
	}
	fn := c.onChange
	c.mu.Unlock()

	if patched && fn != nil {
		fn()
	}
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Cameras returns a copy of the camera collection.
func (c *Controller) Cameras() []models.Camera {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Camera(nil), c.cameras...)
}

// Alerts returns a copy of the alert list, newest first.
func (c *Controller) Alerts() []models.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Alert(nil), c.alerts...)
}

// Contacts returns a copy of the emergency contact list.
func (c *Controller) Contacts() []models.EmergencyContact {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.EmergencyContact(nil), c.contacts...)
}
