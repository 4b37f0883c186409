package web

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/UserHive/go-user-server/internal/auth"
	"github.com/UserHive/go-user-server/internal/common"
	"github.com/UserHive/go-user-server/internal/log"
	"github.com/UserHive/go-user-server/internal/models/user"
	"github.com/UserHive/go-user-server/internal/services"
)

// Non-standard statuses for the two distinct token failure modes. Clients
// depend on the distinction, so these must not collapse into 401.
const (
	// StatusTokenRequired means the token cookie was required but absent.
	StatusTokenRequired = 499
	// StatusInvalidToken means a token cookie was present but did not verify.
	StatusInvalidToken = 498
)

type WebServer struct {
	app         *fiber.App
	userService *services.UserService
	tokens      *auth.TokenService
	logger      *log.Logger
}

func NewWebServer(tokens *auth.TokenService, userService *services.UserService, allowOrigin string, logger *log.Logger) *WebServer {
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigin,
		AllowCredentials: true,
		AllowHeaders:     "Content-Type",
	}))

	s := &WebServer{
		app:         app,
		userService: userService,
		tokens:      tokens,
		logger:      logger,
	}
	s.SetupRoutes()

	return s
}

// App exposes the underlying fiber app, mainly for app.Test in the test suite.
func (s *WebServer) App() *fiber.App {
	return s.app
}

func (s *WebServer) Run(host string, port int) error {
	return s.app.Listen(host + ":" + strconv.Itoa(port))
}

func (s *WebServer) SetupRoutes() {
	s.app.Get("/health", s.healthCheck)

	api := s.app.Group("/api/user")
	api.Get("/", s.getUsers)
	api.Post("/register", s.createUser)
	api.Post("/login", s.loginUser)
	api.Get("/logout", s.logoutUser)
	api.Get("/profile", s.tokenRequired(s.getProfile))
	api.Put("/update", s.tokenRequired(s.updateUser))
	api.Put("/password/update", s.tokenRequired(s.updatePassword))
	api.Delete("/delete", s.tokenRequired(s.deleteUser))
}

// tokenRequired wraps a handler with session verification. The wrapped handler
// only runs once Verify has resolved, so nothing is ever written before the
// token check completes.
func (s *WebServer) tokenRequired(handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies("token")
		if token == "" {
			s.logger.Info("Missing token cookie")
			return s.fail(c, StatusTokenRequired, "Token is required but was not submitted")
		}

		claims, err := s.tokens.Verify(token)
		if err != nil {
			s.logger.Info("Invalid token")
			return s.fail(c, StatusInvalidToken, "Invalid token")
		}

		c.Locals("claims", claims)
		return handler(c)
	}
}

func (s *WebServer) getUsers(c *fiber.Ctx) error {
	s.logger.Info("Get users request received")

	users, err := s.userService.ListUsers(c.Context())
	if err != nil {
		s.logger.Error("Failed to get users:", err.Error())
		return s.fail(c, http.StatusInternalServerError, "Unable to get users")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true, "result": users})
}

func (s *WebServer) createUser(c *fiber.Ctx) error {
	s.logger.Info("Register request received")

	fields, err := ParseUserObject(c)
	if err != nil {
		s.logger.Info("Register request parsing failed:", err.Error())
		return s.fail(c, http.StatusBadRequest, err.Error())
	}

	if errorList := user.Validate(fields, true); len(errorList) > 0 {
		s.logger.Info("Register request validation failed:", errorList)
		return s.fail(c, http.StatusBadRequest, ValidationErrorMessage(errorList))
	}

	req := common.RegisterRequest{
		Email:    user.StringField(fields, "email"),
		Password: user.StringField(fields, "password"),
	}
	if err := ValidateRequest(&req); err != nil {
		s.logger.Info("Register request validation failed:", err.Error())
		return s.fail(c, http.StatusBadRequest, err.Error())
	}

	newUser, err := s.userService.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			s.logger.Info("Email already registered:", req.Email)
			return s.fail(c, http.StatusConflict, "A user with this email already exists")
		}
		s.logger.Error("User registration failed:", err.Error())
		return s.fail(c, http.StatusInternalServerError, "Failed to create user")
	}

	s.logger.Info("User registered successfully")
	return c.Status(http.StatusCreated).JSON(fiber.Map{"success": true, "user": newUser})
}

func (s *WebServer) loginUser(c *fiber.Ctx) error {
	s.logger.Info("Login request received")

	fields, err := ParseUserObject(c)
	if err != nil {
		s.logger.Info("Login request parsing failed:", err.Error())
		return s.fail(c, http.StatusBadRequest, err.Error())
	}

	if errorList := user.Validate(fields, true); len(errorList) > 0 {
		s.logger.Info("Login request validation failed:", errorList)
		return s.fail(c, http.StatusBadRequest, ValidationErrorMessage(errorList))
	}

	req := common.LoginRequest{
		Email:    user.StringField(fields, "email"),
		Password: user.StringField(fields, "password"),
	}
	if err := ValidateRequest(&req); err != nil {
		s.logger.Info("Login request validation failed:", err.Error())
		return s.fail(c, http.StatusBadRequest, err.Error())
	}

	token, err := s.userService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			s.logger.Info("Login failed, unknown email:", req.Email)
			return s.fail(c, http.StatusNotFound, "User not found")
		case errors.Is(err, services.ErrWrongPassword):
			s.logger.Info("Login failed, wrong password")
			return s.fail(c, http.StatusBadRequest, "Wrong password")
		default:
			s.logger.Error("User login failed:", err.Error())
			return s.fail(c, http.StatusInternalServerError, "Failed to log in user")
		}
	}

	c.Cookie(&fiber.Cookie{
		Name:  "token",
		Value: token,
		Path:  "/",
	})

	s.logger.Info("User logged in")
	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}

func (s *WebServer) logoutUser(c *fiber.Ctx) error {
	s.logger.Info("Logout request received")

	c.Cookie(&fiber.Cookie{
		Name:  "token",
		Value: "",
		Path:  "/",
	})

	return c.Status(http.StatusOK).JSON(fiber.Map{"success": true})
}

func (s *WebServer) getProfile(c *fiber.Ctx) error {
	s.logger.Info("Get profile request received")

	claims := c.Locals("claims").(auth.Claims)
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    fiber.Map{"id": claims.ID},
	})
}

func (s *WebServer) updateUser(c *fiber.Ctx) error {
	s.logger.Info("Update email request received")

	claims := c.Locals("claims").(auth.Claims)

	fields, err := ParseUserObject(c)
	if err != nil {
		s.logger.Info("Update email request parsing failed:", err.Error())
		return s.fail(c, http.StatusBadRequest, err.Error())
	}

	// Password changes go through their own endpoint; the allowlist here is
	// {email} only, so a password field is rejected.
	if errorList := user.Validate(fields, false); len(errorList) > 0 {
		s.logger.Info("Update email request validation failed:", errorList)
		return s.fail(c, http.StatusBadRequest, ValidationErrorMessage(errorList))
	}

	req := common.UpdateEmailRequest{Email: user.StringField(fields, "email")}
	if err := ValidateRequest(&req); err != nil {
		s.logger.Info("Update email request validation failed:", err.Error())
		return s.fail(c, http.StatusBadRequest, err.Error())
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		s.logger.Error("Invalid user ID in token:", claims.ID)
		return s.fail(c, http.StatusInternalServerError, "Failed to update user profile")
	}

	updated, err := s.userService.UpdateEmail(c.Context(), id, req.Email)
	if err != nil {
		s.logger.Error("Failed to update user profile:", err.Error())
		return s.fail(c, http.StatusInternalServerError, "Failed to update user profile")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    fiber.Map{"id": updated.ID},
	})
}

func (s *WebServer) updatePassword(c *fiber.Ctx) error {
	s.logger.Info("Update password request received")

	claims := c.Locals("claims").(auth.Claims)

	fields, err := ParseUserObject(c)
	if err != nil {
		s.logger.Info("Update password request parsing failed:", err.Error())
		return s.fail(c, http.StatusBadRequest, err.Error())
	}

	var invalid []string
	for key := range fields {
		if key != "oldPassword" && key != "newPassword" {
			invalid = append(invalid, key)
		}
	}
	sort.Strings(invalid)

	oldPassword := user.StringField(fields, "oldPassword")
	newPassword := user.StringField(fields, "newPassword")
	if oldPassword == "" || newPassword == "" || len(invalid) > 0 {
		s.logger.Info("Update password request validation failed, disallowed fields:", invalid)
		return s.fail(c, http.StatusBadRequest,
			"Provide a 'user' object containing oldPassword and newPassword. The following properties are not allowed to be set: "+strings.Join(invalid, ", "))
	}

	req := common.UpdatePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}
	if err := ValidateRequest(&req); err != nil {
		s.logger.Info("Update password request validation failed:", err.Error())
		return s.fail(c, http.StatusBadRequest, err.Error())
	}

	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		s.logger.Error("Invalid user ID in token:", claims.ID)
		return s.fail(c, http.StatusInternalServerError, "Failed to update user password")
	}

	updated, err := s.userService.UpdatePassword(c.Context(), id, req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			s.logger.Info("Update password failed, old password mismatch")
			return s.fail(c, http.StatusBadRequest, "Old password is incorrect")
		}
		s.logger.Error("Failed to update user password:", err.Error())
		return s.fail(c, http.StatusInternalServerError, "Failed to update user password")
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    fiber.Map{"id": updated.ID},
	})
}

func (s *WebServer) deleteUser(c *fiber.Ctx) error {
	s.logger.Info("Delete user request received")

	fields, err := ParseUserObject(c)
	if err != nil {
		s.logger.Info("Delete user request parsing failed:", err.Error())
		return s.fail(c, http.StatusBadRequest, err.Error())
	}

	req := common.DeleteUserRequest{
		ID:       user.StringField(fields, "id"),
		Password: user.StringField(fields, "password"),
	}
	if req.ID == "" {
		s.logger.Info("Delete user request missing ID")
		return s.fail(c, http.StatusBadRequest, "Provide a user ID")
	}

	id, err := primitive.ObjectIDFromHex(req.ID)
	if err != nil {
		s.logger.Error("Invalid user ID:", req.ID)
		return s.fail(c, http.StatusInternalServerError, "Failed to delete user")
	}

	if _, err := s.userService.DeleteUser(c.Context(), id, req.Password); err != nil {
		if errors.Is(err, services.ErrWrongPassword) {
			s.logger.Info("Delete user failed, wrong password")
			return s.fail(c, http.StatusBadRequest, "Password is incorrect")
		}
		s.logger.Error("Failed to delete user:", err.Error())
		return s.fail(c, http.StatusInternalServerError, "Failed to delete user")
	}

	s.logger.Info("User deleted")
	return c.Status(http.StatusOK).JSON(fiber.Map{
		"success": true,
		"user":    fiber.Map{"id": req.ID},
	})
}

func (s *WebServer) healthCheck(c *fiber.Ctx) error {
	return c.SendString("OK")
}

func (s *WebServer) fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
