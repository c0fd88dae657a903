package api

import (
	"net/http"
	"time"

	"github.com/openwellness/wellness-planner/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler composes workout and nutrition data into the summary the
// landing page renders.
type DashboardHandler struct {
	workoutService   service.WorkoutService
	nutritionService service.NutritionService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(workoutService service.WorkoutService, nutritionService service.NutritionService) *DashboardHandler {
	return &DashboardHandler{
		workoutService:   workoutService,
		nutritionService: nutritionService,
	}
}

type WorkoutStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	CompletedLast7 int `json:"completedLast7Days"`
}

type DashboardResponse struct {
	Stats            WorkoutStats           `json:"stats"`
	UpcomingWorkouts []WorkoutResponse      `json:"upcomingWorkouts"`
	RecentWorkouts   []WorkoutResponse      `json:"recentWorkouts"`
	CurrentPlan      *NutritionPlanResponse `json:"currentNutritionPlan,omitempty"`
}

const dashboardRecentLimit = 5

// GetDashboard godoc
// @Summary Dashboard summary
// @Description Returns completion stats, the next scheduled workouts, the most
// recent history entries, and the latest nutrition plan.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DashboardResponse "Dashboard data"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	ctx := c.Request.Context()

	workouts, err := h.workoutService.GetWorkouts(ctx, userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}

	now := time.Now().UTC()
	weekAgo := now.AddDate(0, 0, -7)

	stats := WorkoutStats{Total: len(workouts)}
	for _, w := range workouts {
		if !w.Completed {
			continue
		}
		stats.Completed++
		if w.CompletionDate != nil && w.CompletionDate.After(weekAgo) {
			stats.CompletedLast7++
		}
	}

	upcoming, err := h.workoutService.GetScheduled(ctx, userID, now, now.AddDate(0, 0, 7))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve scheduled workouts.")
		return
	}

	recent := workouts
	if len(recent) > dashboardRecentLimit {
		recent = recent[:dashboardRecentLimit]
	}

	resp := DashboardResponse{
		Stats:            stats,
		UpcomingWorkouts: MapWorkoutsToResponse(upcoming),
		RecentWorkouts:   MapWorkoutsToResponse(recent),
	}

	// Nutrition plans come back latest-first; the head is the current plan.
	plans, err := h.nutritionService.GetNutritionPlans(ctx, userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve nutrition plans.")
		return
	}
	if len(plans) > 0 {
		current := MapNutritionPlanToResponse(&plans[0])
		resp.CurrentPlan = &current
	}

	c.JSON(http.StatusOK, resp)
}
