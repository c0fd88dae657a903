package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/openwellness/wellness-planner/internal/domain"
	"github.com/openwellness/wellness-planner/internal/generation"
	"github.com/openwellness/wellness-planner/internal/repository"
	"github.com/openwellness/wellness-planner/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionHandler holds the nutrition and planner service dependencies.
type NutritionHandler struct {
	nutritionService service.NutritionService
	plannerService   service.PlannerService
}

// NewNutritionHandler creates a new NutritionHandler.
func NewNutritionHandler(nutritionService service.NutritionService, plannerService service.PlannerService) *NutritionHandler {
	return &NutritionHandler{
		nutritionService: nutritionService,
		plannerService:   plannerService,
	}
}

// --- DTOs ---

type MealPayload struct {
	Name            string                `json:"name" binding:"required"`
	Description     string                `json:"description"`
	MealType        domain.MealType       `json:"mealType" binding:"required,oneof=breakfast lunch dinner snack"`
	Ingredients     []string              `json:"ingredients"`
	ServingSize     string                `json:"servingSize"`
	Macros          domain.MacroNutrients `json:"macros"`
	PreparationTime int                   `json:"preparationTime" binding:"omitempty,min=0"`
	Instructions    []string              `json:"instructions"`
}

type CreateNutritionPlanRequest struct {
	Title               string                `json:"title" binding:"required"`
	Description         string                `json:"description"`
	TargetCalories      int                   `json:"targetCalories" binding:"omitempty,min=0"`
	TargetMacros        domain.MacroNutrients `json:"targetMacros"`
	Meals               []MealPayload         `json:"meals"`
	DietaryRestrictions []string              `json:"dietaryRestrictions"`
	Preferences         []string              `json:"preferences"`
}

type UpdateNutritionPlanRequest struct {
	Title               *string                `json:"title,omitempty"`
	Description         *string                `json:"description,omitempty"`
	TargetCalories      *int                   `json:"targetCalories,omitempty" binding:"omitempty,min=0"`
	TargetMacros        *domain.MacroNutrients `json:"targetMacros,omitempty"`
	Meals               []MealPayload          `json:"meals,omitempty"`
	DietaryRestrictions []string               `json:"dietaryRestrictions,omitempty"`
	Preferences         []string               `json:"preferences,omitempty"`
}

type GenerateNutritionPlanRequest struct {
	TargetCalories  int             `json:"targetCalories" binding:"required,min=1200,max=5000"`
	MealsPerDay     int             `json:"mealsPerDay" binding:"required,min=3,max=6"`
	DietType        domain.DietType `json:"dietType" binding:"required,oneof=balanced lowCarb highProtein vegetarian vegan keto"`
	Allergies       []string        `json:"allergies"`
	Preferences     []string        `json:"preferences"`
	PreparationTime int             `json:"preparationTime" binding:"required,min=15,max=120"`
}

type NutritionPlanResponse struct {
	ID                  string                `json:"id"`
	Title               string                `json:"title"`
	Description         string                `json:"description,omitempty"`
	TargetCalories      int                   `json:"targetCalories"`
	TargetMacros        domain.MacroNutrients `json:"targetMacros"`
	Meals               []domain.Meal         `json:"meals"`
	DietaryRestrictions []string              `json:"dietaryRestrictions,omitempty"`
	Preferences         []string              `json:"preferences,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
}

type GenerateNutritionPlanResponse struct {
	Plan     NutritionPlanResponse `json:"plan"`
	DemoMode bool                  `json:"demoMode"`
	Notice   string                `json:"notice,omitempty"`
}

const nutritionDemoNotice = "Using demo mode: add a GROQ API key to enable AI nutrition planning."

// MapNutritionPlanToResponse converts a domain.NutritionPlan to its DTO.
func MapNutritionPlanToResponse(p *domain.NutritionPlan) NutritionPlanResponse {
	if p == nil {
		return NutritionPlanResponse{}
	}
	meals := p.Meals
	if meals == nil {
		meals = []domain.Meal{}
	}
	return NutritionPlanResponse{
		ID:                  p.ID.Hex(),
		Title:               p.Title,
		Description:         p.Description,
		TargetCalories:      p.TargetCalories,
		TargetMacros:        p.TargetMacros,
		Meals:               meals,
		DietaryRestrictions: p.DietaryRestrictions,
		Preferences:         p.Preferences,
		CreatedAt:           p.CreatedAt,
	}
}

// MapNutritionPlansToResponse converts a slice of plans to DTOs.
func MapNutritionPlansToResponse(plans []domain.NutritionPlan) []NutritionPlanResponse {
	responses := make([]NutritionPlanResponse, len(plans))
	for i, p := range plans {
		responses[i] = MapNutritionPlanToResponse(&p)
	}
	return responses
}

func mapMealPayloads(in []MealPayload) []domain.Meal {
	out := make([]domain.Meal, len(in))
	for i, p := range in {
		out[i] = domain.Meal{
			Name:            p.Name,
			Description:     p.Description,
			MealType:        p.MealType,
			Ingredients:     p.Ingredients,
			ServingSize:     p.ServingSize,
			Macros:          p.Macros,
			PreparationTime: p.PreparationTime,
			Instructions:    p.Instructions,
		}
	}
	return out
}

// --- Handler Methods ---

// CreateNutritionPlan godoc
// @Summary Create a nutrition plan
// @Description Creates a plan submitted directly by the authenticated user.
// @Tags Nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body CreateNutritionPlanRequest true "Plan details"
// @Success 201 {object} NutritionPlanResponse "Plan created"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /nutrition [post]
func (h *NutritionHandler) CreateNutritionPlan(c *gin.Context) {
	var req CreateNutritionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plan := domain.NutritionPlan{
		Title:               req.Title,
		Description:         req.Description,
		TargetCalories:      req.TargetCalories,
		TargetMacros:        req.TargetMacros,
		Meals:               mapMealPayloads(req.Meals),
		DietaryRestrictions: req.DietaryRestrictions,
		Preferences:         req.Preferences,
	}

	created, err := h.nutritionService.CreateNutritionPlan(c.Request.Context(), userID, plan)
	if err != nil {
		if errors.Is(err, service.ErrPlanValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save nutrition plan.")
		}
		return
	}
	c.JSON(http.StatusCreated, MapNutritionPlanToResponse(created))
}

// GetNutritionPlans godoc
// @Summary List the user's nutrition plans
// @Description Returns the authenticated user's plans, latest first.
// @Tags Nutrition
// @Produce json
// @Security BearerAuth
// @Success 200 {array} NutritionPlanResponse "Nutrition plans"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /nutrition [get]
func (h *NutritionHandler) GetNutritionPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	plans, err := h.nutritionService.GetNutritionPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve nutrition plans.")
		return
	}
	c.JSON(http.StatusOK, MapNutritionPlansToResponse(plans))
}

// UpdateNutritionPlan godoc
// @Summary Update a nutrition plan
// @Description Applies a partial field patch; omitted fields stay unchanged.
// @Tags Nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param patch body UpdateNutritionPlanRequest true "Fields to change"
// @Success 200 {object} NutritionPlanResponse "Updated plan"
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 404 {object} gin.H "Not found"
// @Router /nutrition/{id} [patch]
func (h *NutritionHandler) UpdateNutritionPlan(c *gin.Context) {
	var req UpdateNutritionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format.")
		return
	}

	patch := repository.NutritionPlanPatch{
		Title:               req.Title,
		Description:         req.Description,
		TargetCalories:      req.TargetCalories,
		TargetMacros:        req.TargetMacros,
		DietaryRestrictions: req.DietaryRestrictions,
		Preferences:         req.Preferences,
	}
	if req.Meals != nil {
		patch.Meals = mapMealPayloads(req.Meals)
	}

	plan, err := h.nutritionService.UpdateNutritionPlan(c.Request.Context(), userID, planID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrPlanValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update nutrition plan.")
		}
		return
	}
	c.JSON(http.StatusOK, MapNutritionPlanToResponse(plan))
}

// GenerateNutritionPlan godoc
// @Summary Generate a nutrition plan
// @Description Runs the generation pipeline and persists the resulting plan.
// Without a provider credential a canned demo plan is used.
// @Tags Nutrition
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param config body GenerateNutritionPlanRequest true "Generation configuration"
// @Success 201 {object} GenerateNutritionPlanResponse "Generated plan"
// @Failure 400 {object} gin.H "Invalid configuration"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 422 {object} gin.H "Provider response failed shape validation"
// @Failure 500 {object} gin.H "Persistence failure"
// @Failure 502 {object} gin.H "Generation provider failure"
// @Router /nutrition/generate [post]
func (h *NutritionHandler) GenerateNutritionPlan(c *gin.Context) {
	var req GenerateNutritionPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return
	}

	cfg := generation.NutritionPlanConfig{
		TargetCalories:  req.TargetCalories,
		MealsPerDay:     req.MealsPerDay,
		DietType:        req.DietType,
		Allergies:       req.Allergies,
		Preferences:     req.Preferences,
		PreparationTime: req.PreparationTime,
	}

	result, err := h.plannerService.GenerateNutritionPlan(c.Request.Context(), userID, cfg)
	if err != nil {
		var shapeErr *generation.ShapeError
		switch {
		case errors.Is(err, service.ErrInvalidGenerationConfig):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &shapeErr):
			abortWithError(c, http.StatusUnprocessableEntity, shapeErr.Error())
		case errors.Is(err, service.ErrGenerationFailed):
			abortWithError(c, http.StatusBadGateway, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate nutrition plan.")
		}
		return
	}

	resp := GenerateNutritionPlanResponse{
		Plan:     MapNutritionPlanToResponse(result.Plan),
		DemoMode: result.DemoMode,
	}
	if result.DemoMode {
		resp.Notice = nutritionDemoNotice
	}
	c.JSON(http.StatusCreated, resp)
}
