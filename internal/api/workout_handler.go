package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/generation"
	"github.com/openwellness/wellness-planner/internal/repository"
	"github.com/openwellness/wellness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutHandler holds the workout and planner service dependencies.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	plannerService service.PlannerService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService, plannerService service.PlannerService) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService: workoutService,
		plannerService: plannerService,
	}
}

// --- DTOs ---

type ExercisePayload struct {
	Name     string   `json:"name" binding:"required"`
	Sets     int      `json:"sets" binding:"required,gt=0"`
	Reps     int      `json:"reps" binding:"required,gt=0"`
	Weight   *float64 `json:"weight,omitempty"`
	Duration *int     `json:"duration,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

type CreateWorkoutRequest struct {
	Title         string             `json:"title" binding:"required"`
	Description   string             `json:"description"`
	Exercises     []ExercisePayload  `json:"exercises"`
	ScheduledDate *time.Time         `json:"scheduledDate,omitempty"`
	Type          domain.WorkoutType `json:"type" binding:"required,oneof=strength cardio flexibility custom"`
	Difficulty    domain.Difficulty  `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	SplitType     domain.SplitType   `json:"splitType" binding:"omitempty,oneof=fullBody upperLower custom"`
	IsRestDay     bool               `json:"isRestDay"`
}

type UpdateWorkoutRequest struct {
	Title         *string            `json:"title,omitempty"`
	Description   *string            `json:"description,omitempty"`
	Exercises     []ExercisePayload  `json:"exercises,omitempty"`
	ScheduledDate *time.Time         `json:"scheduledDate,omitempty"`
	Completed     *bool              `json:"completed,omitempty"`
	Difficulty    *domain.Difficulty `json:"difficulty,omitempty" binding:"omitempty,oneof=beginner intermediate advanced"`
}

type GenerateWorkoutsRequest struct {
	DaysPerWeek int                `json:"daysPerWeek" binding:"required,min=1,max=7"`
	Type        domain.WorkoutType `json:"type" binding:"required,oneof=strength cardio flexibility custom"`
	SplitType   domain.SplitType   `json:"splitType" binding:"required,oneof=fullBody upperLower custom"`
	Difficulty  domain.Difficulty  `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	Duration    int                `json:"duration" binding:"required,min=15,max=120"`
	Equipment   []string           `json:"equipment"`
}

type WorkoutResponse struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Exercises      []domain.Exercise  `json:"exercises"`
	ScheduledDate  *time.Time         `json:"scheduledDate,omitempty"`
	Completed      bool               `json:"completed"`
	CompletionDate *time.Time         `json:"completionDate,omitempty"`
	Type           domain.WorkoutType `json:"type"`
	Difficulty     domain.Difficulty  `json:"difficulty"`
	SplitType      domain.SplitType   `json:"splitType,omitempty"`
	IsRestDay      bool               `json:"isRestDay"`
	CreatedAt      time.Time          `json:"createdAt"`
}

// GenerateWorkoutsResponse reports the outcome of one generation request.
// On a partial batch failure the handler responds 500 and SavedCount names
// how many workouts were committed before the failure.
type GenerateWorkoutsResponse struct {
	Workouts []WorkoutResponse `json:"workouts"`
	DemoMode bool              `json:"demoMode"`
	Notice   string            `json:"notice,omitempty"`
}

const demoModeNotice = "Using demo mode: add a GROQ API key to enable AI workout generation."

// MapWorkoutToResponse converts a domain.Workout to WorkoutResponse DTO.
func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	if w == nil {
		return WorkoutResponse{}
	}
	exercises := w.Exercises
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	return WorkoutResponse{
		ID:             w.ID.Hex(),
		Title:          w.Title,
		Description:    w.Description,
		Exercises:      exercises,
		ScheduledDate:  w.ScheduledDate,
		Completed:      w.Completed,
		CompletionDate: w.CompletionDate,
		Type:           w.Type,
		Difficulty:     w.Difficulty,
		SplitType:      w.SplitType,
		IsRestDay:      w.IsRestDay,
		CreatedAt:      w.CreatedAt,
	}
}

// MapWorkoutsToResponse converts a slice of domain.Workout to DTOs.
func MapWorkoutsToResponse(workouts []domain.Workout) []WorkoutResponse {
	responses := make([]WorkoutResponse, len(workouts))
	for i, w := range workouts {
		responses[i] = MapWorkoutToResponse(&w)
	}
	return responses
}

func mapExercisePayloads(in []ExercisePayload) []domain.Exercise {
	out := make([]domain.Exercise, len(in))
	for i, p := range in {
		out[i] = domain.Exercise{
			Name:     p.Name,
			Sets:     p.Sets,
			Reps:     p.Reps,
			Weight:   p.Weight,
			Duration: p.Duration,
			Notes:    p.Notes,
		}
	}
	return out
}

// --- Handler Methods ---

// CreateWorkout godoc
// @Summary Create a workout
// @Description Creates a workout submitted directly by the authenticated user.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workout body CreateWorkoutRequest true "Workout details"
// @Success 201 {object} WorkoutResponse "Workout created"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workout := domain.Workout{
		Title:         req.Title,
		Description:   req.Description,
		Exercises:     mapExercisePayloads(req.Exercises),
		ScheduledDate: req.ScheduledDate,
		Type:          req.Type,
		Difficulty:    req.Difficulty,
		SplitType:     req.SplitType,
		IsRestDay:     req.IsRestDay,
	}

	created, err := h.workoutService.CreateWorkout(c.Request.Context(), userID, workout)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save workout.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapWorkoutToResponse(created))
}

// GetWorkouts godoc
// @Summary List the user's workouts
// @Description Returns the authenticated user's workout history, latest first.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WorkoutResponse "Workout history"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /workouts [get]
func (h *WorkoutHandler) GetWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	workouts, err := h.workoutService.GetWorkouts(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workouts.")
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}

// GetWorkoutByID godoc
// @Summary Get a single workout
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} WorkoutResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkoutByID(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	workout, err := h.workoutService.GetWorkoutByID(c.Request.Context(), userID, workoutID)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve workout.")
		}
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// UpdateWorkout godoc
// @Summary Update a workout
// @Description Applies a partial field patch; omitted fields stay unchanged.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Param patch body UpdateWorkoutRequest true "Fields to change"
// @Success 200 {object} WorkoutResponse "Updated workout"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{id} [patch]
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	patch := repository.WorkoutPatch{
		Title:         req.Title,
		Description:   req.Description,
		ScheduledDate: req.ScheduledDate,
		Completed:     req.Completed,
		Difficulty:    req.Difficulty,
	}
	if req.Exercises != nil {
		patch.Exercises = mapExercisePayloads(req.Exercises)
	}

	workout, err := h.workoutService.UpdateWorkout(c.Request.Context(), userID, workoutID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrWorkoutNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrWorkoutValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update workout.")
		}
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// CompleteWorkout godoc
// @Summary Mark a workout as completed
// @Description Sets the completed flag and records the completion date.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workout ID"
// @Success 200 {object} WorkoutResponse "Completed workout"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{id}/complete [post]
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	workoutID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid workout ID format.")
		return
	}

	workout, err := h.workoutService.CompleteWorkout(c.Request.Context(), userID, workoutID)
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update workout status.")
		}
		return
	}
	c.JSON(http.StatusOK, MapWorkoutToResponse(workout))
}

// GenerateWorkouts godoc
// @Summary Generate a weekly workout plan
// @Description Runs the generation pipeline and persists one workout per
// requested day. Without a provider credential a canned demo plan is used.
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param config body GenerateWorkoutsRequest true "Generation configuration"
// @Success 201 {object} GenerateWorkoutsResponse "Generated workouts"
// @Failure 400 {object} gin.H "Invalid configuration"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 422 {object} gin.H "Provider response failed shape validation"
// @Failure 500 {object} gin.H "Persistence failure (partial batches stay committed)"
// @Failure 502 {object} gin.H "Generation provider failure"
// @Router /workouts/generate [post]
func (h *WorkoutHandler) GenerateWorkouts(c *gin.Context) {
	var req GenerateWorkoutsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	cfg := generation.WorkoutPlanConfig{
		DaysPerWeek: req.DaysPerWeek,
		Type:        req.Type,
		SplitType:   req.SplitType,
		Difficulty:  req.Difficulty,
		Duration:    req.Duration,
		Equipment:   req.Equipment,
	}

	result, err := h.plannerService.GenerateWorkoutPlan(c.Request.Context(), userID, cfg)
	if err != nil {
		var shapeErr *generation.ShapeError
		var partialErr *service.PartialSaveError
		switch {
		case errors.Is(err, service.ErrInvalidGenerationConfig):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &shapeErr):
			abortWithError(c, http.StatusUnprocessableEntity, shapeErr.Error())
		case errors.Is(err, service.ErrGenerationFailed):
			abortWithError(c, http.StatusBadGateway, err.Error())
		case errors.As(err, &partialErr):
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":      partialErr.Error(),
				"savedCount": partialErr.Saved,
			})
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate workouts.")
		}
		return
	}

	resp := GenerateWorkoutsResponse{
		Workouts: MapWorkoutsToResponse(result.Workouts),
		DemoMode: result.DemoMode,
	}
	if result.DemoMode {
		resp.Notice = demoModeNotice
	}
	c.JSON(http.StatusCreated, resp)
}

// GetCalendar godoc
// @Summary List scheduled workouts in a date range
// @Description Returns workouts with a scheduled date in [from, to). Defaults
// to the next seven days when no range is given.
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param from query string false "Range start (RFC 3339)"
// @Param to query string false "Range end (RFC 3339)"
// @Success 200 {array} WorkoutResponse "Scheduled workouts"
// @Failure 400 {object} gin.H "Invalid range"
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /calendar [get]
func (h *WorkoutHandler) GetCalendar(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	from := time.Now().UTC().Truncate(24 * time.Hour)
	to := from.AddDate(0, 0, 7)
	if raw := c.Query("from"); raw != "" {
		from, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid 'from' value: %v", err))
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		to, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Invalid 'to' value: %v", err))
			return
		}
	}

	workouts, err := h.workoutService.GetScheduled(c.Request.Context(), userID, from, to)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, MapWorkoutsToResponse(workouts))
}
