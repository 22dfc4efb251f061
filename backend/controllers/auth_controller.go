package controllers

import (
	"errors"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/repository"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthController struct {
	Users *repository.UserRepository
	Cfg   *config.Config
	Log   *zap.SugaredLogger
}

func NewAuthController(users *repository.UserRepository, cfg *config.Config, log *zap.SugaredLogger) *AuthController {
	return &AuthController{Users: users, Cfg: cfg, Log: log.With("controller", "auth")}
}

// RegisterRequest defines the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" validate:"required" example:"Ada Lovelace"`
	Email    string `json:"email" validate:"required,email" example:"ada@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"secret123"`
	Role     string `json:"role" validate:"omitempty,oneof=learner author" example:"learner"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required" example:"ada@example.com"`
	Password string `json:"password" validate:"required" example:"secret123"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a learner or author account
// @Tags users
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /users/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterRequest
	if ok, err := utils.ParseBody(c, &input); !ok {
		return err
	}
	if input.Role == "" {
		input.Role = models.RoleLearner
	}

	// Hash password
	hash, err := utils.HashPassword(input.Password, ac.Cfg.BcryptCost)
	if err != nil {
		return utils.InternalServerError(c, err)
	}

	user := models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         input.Role,
	}
	if err := ac.Users.Create(c.UserContext(), &user); err != nil {
		return utils.HandleError(c, err)
	}

	ac.Log.Infow("user registered", "user_id", user.ID, "role", user.Role)
	return utils.Created(c, fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate user and return JWT token
// @Tags users
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /users/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if ok, err := utils.ParseBody(c, &input); !ok {
		return err
	}

	// Find user
	user, err := ac.Users.FindByEmail(c.UserContext(), input.Email)
	if errors.Is(err, models.ErrNotFound) {
		return utils.BadRequest(c, "Invalid email or password")
	}
	if err != nil {
		return utils.HandleError(c, err)
	}

	// Check password
	if !utils.CheckPassword(input.Password, user.PasswordHash) {
		return utils.BadRequest(c, "Invalid email or password")
	}

	// Generate JWT token
	token, err := utils.GenerateJWTToken(user.ID, user.Role, ac.Cfg)
	if err != nil {
		return utils.InternalServerError(c, err)
	}

	return c.JSON(fiber.Map{"token": token})
}
