package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/kardianos/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/Frozzzo/SeguridadUrbana/internal/client"
	"github.com/Frozzzo/SeguridadUrbana/internal/session"
	"github.com/Frozzzo/SeguridadUrbana/pkg/models"
)

// Variables to hold flag values
var (
	expHost       string
	expEmail      string
	expPass       string
	expPort       string
	serviceAction string // "install", "uninstall", "start", "stop"
)

// --- SERVICE WRAPPER ---

// program implements the kardianos/service interface
type program struct {
	exit   chan struct{}
	server *http.Server
	api    *client.Client
	sess   *session.Session
}

func (p *program) Start(s service.Service) error {
	// Start should not block. Do the actual work async.
	p.exit = make(chan struct{})
	go p.run()
	return nil
}

func (p *program) run() {
	// 1. Initial Login
	log.Println("Attempting initial login...")
	if err := p.sess.Login(expEmail, expPass); err != nil {
		log.Printf("Fatal: Initial login failed: %v", err)
		// Exit so the service manager attempts a restart.
		os.Exit(1)
	}
	log.Println("Initial login successful.")

	// 2. Setup Prometheus
	registry := prometheus.NewRegistry()
	collector := &NeighborhoodCollector{API: p.api, Session: p.sess, Email: expEmail, Password: expPass}
	registry.MustRegister(collector)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{
		ErrorLog: log.Default(),
	})

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	addr := fmt.Sprintf(":%s", expPort)
	p.server = &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	log.Printf("Seguridad Urbana Exporter listening on %s", addr)

	// Blocking call to listen
	if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("HTTP Server error: %v", err)
	}
}

func (p *program) Stop(s service.Service) error {
	// Stop should not block. Signal the app to stop.
	log.Println("Stopping service...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.server != nil {
		if err := p.server.Shutdown(ctx); err != nil {
			log.Printf("Server forced to shutdown: %v", err)
		}
	}
	close(p.exit)
	return nil
}

// --- COLLECTOR LOGIC ---

type NeighborhoodCollector struct {
	API      *client.Client
	Session  *session.Session
	Email    string
	Password string
	Mutex    sync.Mutex
}

var (
	upDesc = prometheus.NewDesc(
		"seguridad_up", "Was the last scrape successful.", nil, nil,
	)
	scrapeDurationDesc = prometheus.NewDesc(
		"seguridad_scrape_duration_seconds", "Time taken to scrape the API.", nil, nil,
	)
	cameraUpDesc = prometheus.NewDesc(
		"seguridad_camera_up", "Camera online status.", []string{"id", "name", "location", "type"}, nil,
	)
	cameraCountDesc = prometheus.NewDesc(
		"seguridad_cameras_total", "Total cameras grouped by status.", []string{"status"}, nil,
	)
	alertsCountDesc = prometheus.NewDesc(
		"seguridad_alerts_total", "Total alerts grouped by type.", []string{"type"}, nil,
	)
	alertsUnreadDesc = prometheus.NewDesc(
		"seguridad_alerts_unread", "Alerts not yet marked read.", nil, nil,
	)
	contactsCountDesc = prometheus.NewDesc(
		"seguridad_emergency_contacts_total", "Number of emergency contacts.", nil, nil,
	)
)

func (c *NeighborhoodCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- upDesc
	ch <- scrapeDurationDesc
	ch <- cameraUpDesc
	ch <- cameraCountDesc
	ch <- alertsCountDesc
	ch <- alertsUnreadDesc
	ch <- contactsCountDesc
}

func (c *NeighborhoodCollector) Collect(ch chan<- prometheus.Metric) {
	c.Mutex.Lock()
	defer c.Mutex.Unlock()
	start := time.Now()
	success := 1.0

	// 1. Cameras
	if cams, err := c.fetchCamerasWithRetry(); err == nil {
		statusCounts := make(map[string]float64)
		for _, cam := range cams {
			isUp := 0.0
			if cam.Status == models.CameraOnline {
				isUp = 1.0
			}
			ch <- prometheus.MustNewConstMetric(cameraUpDesc, prometheus.GaugeValue, isUp, cam.ID, cam.Name, cam.Location, cam.Type)

			st := strings.ToUpper(cam.Status)
			if st == "" {
				st = "UNKNOWN"
			}
			statusCounts[st]++
		}
		for st, cnt := range statusCounts {
			ch <- prometheus.MustNewConstMetric(cameraCountDesc, prometheus.GaugeValue, cnt, st)
		}
	} else {
		success = 0.0
		log.Printf("Error scraping cameras: %v", err)
	}

	// 2. Alerts
	if alerts, err := c.fetchAlertsWithRetry(); err == nil {
		typeCounts := make(map[string]float64)
		unread := 0.0
		for _, a := range alerts {
			st := strings.ToUpper(a.Type)
			if st == "" {
				st = "UNKNOWN"
			}
			typeCounts[st]++
			if !a.Read {
				unread++
			}
		}
		for st, cnt := range typeCounts {
			ch <- prometheus.MustNewConstMetric(alertsCountDesc, prometheus.GaugeValue, cnt, st)
		}
		ch <- prometheus.MustNewConstMetric(alertsUnreadDesc, prometheus.GaugeValue, unread)
	} else {
		success = 0.0
		log.Printf("Error scraping alerts: %v", err)
	}

	// 3. Contacts
	if contacts, err := c.fetchContactsWithRetry(); err == nil {
		ch <- prometheus.MustNewConstMetric(contactsCountDesc, prometheus.GaugeValue, float64(len(contacts)))
	} else {
		success = 0.0
		log.Printf("Error scraping emergency contacts: %v", err)
	}

	ch <- prometheus.MustNewConstMetric(upDesc, prometheus.GaugeValue, success)
	ch <- prometheus.MustNewConstMetric(scrapeDurationDesc, prometheus.GaugeValue, time.Since(start).Seconds())
}

// --- RETRY HELPERS ---
// The API reports one generic failure per operation, so an expired token is
// indistinguishable from an outage. One fresh login covers both cases.

func (c *NeighborhoodCollector) fetchCamerasWithRetry() ([]models.Camera, error) {
	res, err := c.API.GetCameras(c.Session.Token())
	if err == nil {
		return res, nil
	}
	if e := c.Session.Login(c.Email, c.Password); e == nil {
		return c.API.GetCameras(c.Session.Token())
	}
	return nil, err
}
func (c *NeighborhoodCollector) fetchAlertsWithRetry() ([]models.Alert, error) {
	res, err := c.API.GetAlerts(c.Session.Token())
	if err == nil {
		return res, nil
	}
	if e := c.Session.Login(c.Email, c.Password); e == nil {
		return c.API.GetAlerts(c.Session.Token())
	}
	return nil, err
}
func (c *NeighborhoodCollector) fetchContactsWithRetry() ([]models.EmergencyContact, error) {
	res, err := c.API.GetEmergencyContacts(c.Session.Token())
	if err == nil {
		return res, nil
	}
	if e := c.Session.Login(c.Email, c.Password); e == nil {
		return c.API.GetEmergencyContacts(c.Session.Token())
	}
	return nil, err
}

// --- COMMAND ---

var exporterCmd = &cobra.Command{
	Use:   "exporter",
	Short: "Start Prometheus Exporter service",
	Long: `Starts a long-running HTTP server that exposes neighborhood metrics.
Can be installed as a system service.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Setup Client
		hostClean := strings.TrimRight(expHost, "/")
		api := client.New(hostClean)

		// 2. Define Service Configuration
		svcConfig := &service.Config{
			Name:        "seguridad-exporter",
			DisplayName: "Seguridad Urbana Prometheus Exporter",
			Description: "Exposes Seguridad Urbana neighborhood metrics to Prometheus",
			// Arguments passed to the binary when run as a service
			Arguments: []string{
				"exporter",
				"--host", expHost,
				"--email", expEmail,
				"--password", expPass,
				"--port", expPort,
			},
		}

		prg := &program{
			api:  api,
			sess: session.New(api),
		}

		s, err := service.New(prg, svcConfig)
		if err != nil {
			log.Fatal(err)
		}

		// 3. Handle Service Control Actions (Install, Start, Stop, Uninstall)
		if serviceAction != "" {
			if serviceAction == "install" {
				// Validate required flags before installing
				if expHost == "" || expEmail == "" || expPass == "" {
					log.Fatal("Error: You must provide all credentials (--host, --email, --password) to install the service.")
				}
			}

			err = service.Control(s, serviceAction)
			if err != nil {
				log.Fatalf("Failed to %s service: %v", serviceAction, err)
			}
			fmt.Printf("Service action '%s' completed successfully.\n", serviceAction)
			return
		}

		// 4. Run the Service (Blocking)
		logger, err := s.Logger(nil)
		if err != nil {
			log.Fatal(err)
		}
		if err = s.Run(); err != nil {
			logger.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(exporterCmd)
	exporterCmd.Flags().StringVar(&expHost, "host", "", "API Base URL")
	exporterCmd.Flags().StringVar(&expEmail, "email", "", "Account email")
	exporterCmd.Flags().StringVar(&expPass, "password", "", "Account password")
	exporterCmd.Flags().StringVar(&expPort, "port", "9101", "Port to listen on")

	// Service Control
	exporterCmd.Flags().StringVar(&serviceAction, "service", "", "Service action: install, uninstall, start, stop")
}
