// Package server exposes the planner over HTTP. One POST runs the full
// pipeline for a task; completed plans are persisted to the plan store
// and can be fetched back by task id.
package server

import (
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/packman/loadplan/internal/engine"
	"github.com/packman/loadplan/internal/model"
	"github.com/packman/loadplan/internal/project"
)

// Server wires the packer, the plan store and the debug trail behind a
// gin router.
type Server struct {
	Settings model.Settings
	Vehicles []model.Vehicle

	PlansDir string
	DebugDir string

	Logger *log.Logger
}

// New builds a server with the given planner settings and custom
// vehicle presets. Empty dirs disable persistence and debug files.
func New(settings model.Settings, vehicles []model.Vehicle, plansDir, debugDir string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		Settings: settings,
		Vehicles: vehicles,
		PlansDir: plansDir,
		DebugDir: debugDir,
		Logger:   logger,
	}
}

// PlanRequest is the POST /plan payload. The vehicle may be given
// inline or resolved from the transport type presets.
type PlanRequest struct {
	TaskID        string            `json:"taskId" binding:"required"`
	TransportType string            `json:"transportType"`
	Vehicle       *model.Vehicle    `json:"vehicle,omitempty"`
	Units         []model.CargoUnit `json:"units" binding:"required"`
	Settings      *model.Settings   `json:"settings,omitempty"`
}

// PlanResponse is the POST /plan and GET /plan/:taskId body.
type PlanResponse struct {
	Plan        *model.Plan       `json:"plan"`
	Utilization model.Utilization `json:"utilization"`
	RunID       string            `json:"runId,omitempty"`
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/health", s.handleHealth)
	r.POST("/plan", s.handlePlan)
	r.GET("/plan/:taskId", s.handleGetPlan)
	r.GET("/plans", s.handleListPlans)

	return r
}

// Run starts the HTTP server on addr.
func (s *Server) Run(addr string) error {
	s.Logger.Info("listening", "addr", addr)
	return s.Router().Run(addr)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handlePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	vehicle := project.ResolveVehicle(req.TransportType, s.Vehicles)
	if req.Vehicle != nil {
		vehicle = *req.Vehicle
	}
	if err := vehicle.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	for _, u := range req.Units {
		if err := u.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	settings := s.Settings
	if req.Settings != nil {
		settings = *req.Settings
	}

	var events engine.EventFunc
	var runID string
	if s.DebugDir != "" {
		runLog, err := NewRunLogger(s.DebugDir, req.TaskID)
		if err != nil {
			s.Logger.Warn("debug trail disabled for run", "task", req.TaskID, "err", err)
		} else {
			defer runLog.Close()
			events = runLog.Event()
			runID = runLog.RunID()
		}
	}

	packer := engine.NewPacker(settings)
	plan := packer.Pack(req.Units, vehicle, engine.RunContext{
		TaskID:        req.TaskID,
		TransportType: req.TransportType,
		Events:        events,
	})
	plan = engine.Refine(plan, settings, events)

	s.Logger.Info("planned",
		"task", req.TaskID,
		"mode", string(plan.Mode.Mode),
		"placed", len(plan.Placed),
		"unplaced", len(plan.Unplaced),
	)

	if s.PlansDir != "" {
		if err := project.SavePlan(s.PlansDir, plan); err != nil {
			s.Logger.Error("failed to store plan", "task", req.TaskID, "err", err)
		}
	}

	c.JSON(http.StatusOK, PlanResponse{
		Plan:        plan,
		Utilization: plan.Utilization(settings.FloorFill(vehicle)),
		RunID:       runID,
	})
}

func (s *Server) handleGetPlan(c *gin.Context) {
	if s.PlansDir == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan store disabled"})
		return
	}

	taskID := c.Param("taskId")
	plan, err := project.LoadPlan(s.PlansDir, taskID)
	if err != nil {
		if errors.Is(err, project.ErrPlanNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no plan for task " + taskID})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, PlanResponse{
		Plan:        plan,
		Utilization: plan.Utilization(s.Settings.FloorFill(plan.Vehicle)),
	})
}

func (s *Server) handleListPlans(c *gin.Context) {
	if s.PlansDir == "" {
		c.JSON(http.StatusOK, gin.H{"tasks": []string{}})
		return
	}

	ids, err := project.ListPlans(s.PlansDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": ids})
}
