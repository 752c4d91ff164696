package controllers

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/smilepoint/clinic-api/identity"
	"github.com/smilepoint/clinic-api/middleware"
	"github.com/smilepoint/clinic-api/models"
	"github.com/smilepoint/clinic-api/session"
)

// identityProvider is the slice of the identity client the auth flow needs.
// Registration writes local rows only, so provider sign-up is not part of it.
type identityProvider interface {
	GetUser(ctx context.Context, accessToken string) (*identity.User, error)
	SignInWithPassword(ctx context.Context, email, password string) (*identity.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

type AuthController struct {
	DB       *gorm.DB
	Identity identityProvider
	Sessions *session.Store
	Secret   string
}

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// demoAccounts is the fixed login fallback used for demos. Patient demo
// accounts are intentionally absent: patients must go through registration or
// the identity provider.
var demoAccounts = map[string]models.SessionUser{
	"dentist@example.com": {
		ID:             "7a8c5e19-d3f2-4b7a-8c6f-5e2d9a1b3c47",
		Email:          "dentist@example.com",
		Name:           "Dr. Sarah Dentist",
		Role:           models.RoleDentist,
		Specialization: "General Dentistry",
	},
	"hr@example.com": {
		ID:    "9b2d1f8a-6c3e-4d9a-8b5f-7e2c1a3d6b9e",
		Email: "hr@example.com",
		Name:  "Admin HR",
		Role:  models.RoleHR,
	},
	"sarah.smith@dental.com": {
		ID:             "a2b6f9aa-c1db-4126-91ea-e68ce0764cf7",
		Email:          "sarah.smith@dental.com",
		Name:           "Dr. Sarah Smith",
		Role:           models.RoleDentist,
		Specialization: "General Dentistry",
	},
	"john.doe@dental.com": {
		ID:             "36bbff44-0df3-4926-a241-83e753324ffa",
		Email:          "john.doe@dental.com",
		Name:           "Dr. John Doe",
		Role:           models.RoleDentist,
		Specialization: "Orthodontics",
	},
	"emily.johnson@dental.com": {
		ID:             "63d250c7-d355-4eaa-b99e-d502b7db5dfb",
		Email:          "emily.johnson@dental.com",
		Name:           "Dr. Emily Johnson",
		Role:           models.RoleDentist,
		Specialization: "Periodontics",
	},
	"michael.chen@dental.com": {
		ID:             "eab4dac1-1534-4b6d-80d1-243273ee4773",
		Email:          "michael.chen@dental.com",
		Name:           "Dr. Michael Chen",
		Role:           models.RoleDentist,
		Specialization: "Prosthodontics",
	},
	"lisa.anderson@dental.com": {
		ID:             "8e87c140-0749-4fe1-9713-39b05df2f566",
		Email:          "lisa.anderson@dental.com",
		Name:           "Dr. Lisa Anderson",
		Role:           models.RoleDentist,
		Specialization: "Endodontics",
	},
}

// Login authenticates in three attempts: the credentials table, the identity
// provider, then the demo-account table. The first successful path wins. An
// email that exists in the credentials table with a wrong password fails
// immediately and never falls through to the later paths.
func (a *AuthController) Login(c *fiber.Ctx) error {
	type loginInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	input := new(loginInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	// Path 1: credentials table.
	var cred models.User
	err := a.DB.Where("email = ?", input.Email).First(&cred).Error
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(input.Password)) != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid credentials",
			})
		}
		user := models.SessionUser{
			ID:             strconv.FormatUint(uint64(cred.ID), 10),
			Email:          cred.Email,
			Name:           cred.Name,
			Role:           cred.Role,
			Phone:          cred.Phone,
			Specialization: cred.Specialization,
		}
		return a.respondWithSession(c, user)
	}

	// Path 2: delegated identity-provider sign-in.
	if sess, err := a.Identity.SignInWithPassword(c.Context(), input.Email, input.Password); err == nil {
		user := models.SessionUser{
			ID:             sess.User.ID,
			Email:          sess.User.Email,
			Name:           sess.User.Name(),
			Role:           sess.User.Role(),
			Phone:          sess.User.Phone(),
			Specialization: sess.User.Specialization(),
		}
		return a.respondWithSession(c, user)
	}

	// Path 3: demo accounts (dentist/hr only).
	if demo, ok := demoAccounts[input.Email]; ok {
		return a.respondWithSession(c, demo)
	}

	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": "Invalid credentials",
	})
}

// Register creates a credentials row and a linked patient record. An already
// registered email is a recoverable outcome, not an error: the caller gets
// status "exists" and should prompt a sign-in instead.
func (a *AuthController) Register(c *fiber.Ctx) error {
	type registerInput struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Phone    string `json:"phone"`
	}

	input := new(registerInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Email == "" || input.Password == "" || input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	var existing models.User
	if a.DB.Where("email = ?", input.Email).First(&existing).RowsAffected > 0 {
		return c.JSON(fiber.Map{"status": "exists"})
	}

	if taken, err := a.patientNameTaken(input.Name); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check patient name: " + err.Error(),
		})
	} else if taken {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Patient with name '" + input.Name + "' already exists. Please use a different name.",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to hash password",
		})
	}

	cred := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		Role:     models.RolePatient,
		Phone:    input.Phone,
	}
	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cred).Error; err != nil {
			return err
		}
		patient := models.Patient{
			Name:   input.Name,
			Email:  input.Email,
			Phone:  input.Phone,
			UserID: strconv.FormatUint(uint64(cred.ID), 10),
		}
		return tx.Create(&patient).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create user: " + err.Error(),
		})
	}

	user := models.SessionUser{
		ID:    strconv.FormatUint(uint64(cred.ID), 10),
		Email: cred.Email,
		Name:  cred.Name,
		Role:  cred.Role,
		Phone: cred.Phone,
	}
	token, refresh, err := a.issueTokens(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":       "created",
		"user":         user,
		"token":        token,
		"refreshToken": refresh,
	})
}

// Me resolves the current session identity. For patient sessions it also
// performs the consumer-mail auto-provisioning side effect and reports whether
// the registration prompt should be shown.
func (a *AuthController) Me(c *fiber.Ctx) error {
	user := sessionUserFromLocals(c)
	prompt := false
	if user.Role == models.RolePatient {
		prompt = a.registrationPrompt(user)
	}
	return c.JSON(fiber.Map{
		"user":                     user,
		"show_registration_prompt": prompt,
	})
}

// SaveProfile completes a patient's registration by creating their patient
// record. Only patient sessions may call it; duplicate names (case-insensitive)
// are rejected before any write.
func (a *AuthController) SaveProfile(c *fiber.Ctx) error {
	user := sessionUserFromLocals(c)
	if user.Role != models.RolePatient {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Only patients can register",
		})
	}

	type profileInput struct {
		Name  string `json:"name"`
		Phone string `json:"phone"`
	}
	input := new(profileInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}
	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	if taken, err := a.patientNameTaken(input.Name); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check patient name: " + err.Error(),
		})
	} else if taken {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Patient with name '" + input.Name + "' already exists. Please use a different name.",
		})
	}

	patient := models.Patient{
		Name:   input.Name,
		Email:  user.Email,
		Phone:  input.Phone,
		UserID: user.ID,
	}
	if err := a.DB.Create(&patient).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create patient: " + err.Error(),
		})
	}

	user.Name = input.Name
	user.Phone = input.Phone
	return c.JSON(fiber.Map{
		"user":                     user,
		"show_registration_prompt": false,
	})
}

// Logout revokes the session token locally, then tells the identity provider.
// Local revocation is the durable effect; provider sign-out is best-effort and
// a failure there is only logged.
func (a *AuthController) Logout(c *fiber.Ctx) error {
	raw := middleware.RawToken(c)
	if raw != "" {
		ttl := accessTokenTTL
		if token, ok := c.Locals("user").(*jwt.Token); ok {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if exp, ok := claims["exp"].(float64); ok {
					ttl = time.Until(time.Unix(int64(exp), 0))
				}
			}
		}
		if err := a.Sessions.Revoke(c.Context(), raw, ttl); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to clear session",
			})
		}
		if err := a.Identity.SignOut(c.Context(), raw); err != nil {
			log.Printf("identity sign-out failed (session already cleared): %v", err)
		}
	}
	return c.JSON(fiber.Map{
		"message": "Successfully logged out",
	})
}

// Refresh exchanges a valid refresh token for a new access token.
func (a *AuthController) Refresh(c *fiber.Ctx) error {
	type refreshInput struct {
		RefreshToken string `json:"refreshToken"`
	}
	input := new(refreshInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot parse JSON",
		})
	}

	token, err := jwt.Parse(input.RefreshToken, func(t *jwt.Token) (interface{}, error) {
		return []byte(a.Secret), nil
	})
	if err != nil || !token.Valid {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid refresh token",
		})
	}

	claims := token.Claims.(jwt.MapClaims)
	user := models.SessionUser{}
	user.ID, _ = claims["id"].(string)
	user.Email, _ = claims["email"].(string)
	user.Role, _ = claims["role"].(string)
	user.Name, _ = claims["name"].(string)

	access, err := a.signToken(user, accessTokenTTL)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}
	return c.JSON(fiber.Map{"token": access})
}

func (a *AuthController) respondWithSession(c *fiber.Ctx, user models.SessionUser) error {
	prompt := false
	if user.Role == models.RolePatient {
		prompt = a.registrationPrompt(user)
	}

	token, refresh, err := a.issueTokens(user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate token",
		})
	}
	return c.JSON(fiber.Map{
		"token":                    token,
		"refreshToken":             refresh,
		"user":                     user,
		"show_registration_prompt": prompt,
	})
}

// registrationPrompt applies the consumer-mail rule: gmail identities get an
// auto-provisioned patient record (idempotent, looked up by email first) and
// never see the prompt; everyone else sees it until their patient record
// exists.
func (a *AuthController) registrationPrompt(user models.SessionUser) bool {
	if strings.HasSuffix(strings.ToLower(user.Email), "@gmail.com") {
		a.ensurePatientProvisioned(user)
		return false
	}
	var count int64
	if err := a.DB.Model(&models.Patient{}).
		Where("LOWER(email) = LOWER(?)", user.Email).
		Count(&count).Error; err != nil {
		log.Printf("failed to look up patient record for %s: %v", user.Email, err)
		return false
	}
	return count == 0
}

func (a *AuthController) ensurePatientProvisioned(user models.SessionUser) {
	var existing models.Patient
	err := a.DB.Where("LOWER(email) = LOWER(?)", user.Email).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Printf("failed to look up patient record for %s: %v", user.Email, err)
		return
	}
	patient := models.Patient{
		Name:   user.Name,
		Email:  user.Email,
		Phone:  user.Phone,
		UserID: user.ID,
	}
	if err := a.DB.Create(&patient).Error; err != nil {
		log.Printf("failed to auto-provision patient for %s: %v", user.Email, err)
	}
}

func (a *AuthController) patientNameTaken(name string) (bool, error) {
	var count int64
	err := a.DB.Model(&models.Patient{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error
	return count > 0, err
}

func (a *AuthController) issueTokens(user models.SessionUser) (access, refresh string, err error) {
	access, err = a.signToken(user, accessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = a.signToken(user, refreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (a *AuthController) signToken(user models.SessionUser, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
		"name":  user.Name,
		"exp":   time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.Secret))
}

func sessionUserFromLocals(c *fiber.Ctx) models.SessionUser {
	user := models.SessionUser{}
	user.ID, _ = c.Locals("userID").(string)
	user.Email, _ = c.Locals("email").(string)
	user.Role, _ = c.Locals("role").(string)
	user.Name, _ = c.Locals("name").(string)
	return user
}
