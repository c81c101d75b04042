package controllers

import (
	"errors"
	"log"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/Grey-kingreys/restaurant/initializers"
	"github.com/Grey-kingreys/restaurant/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// Default cost for bcrypt password hashing
	bcryptCost = 10

	// Standard response messages
	msgInvalidInput          = "invalid input"
	msgUserAlreadyExists     = "a user with this login already exists"
	msgFailedToHashPassword  = "failed to hash password"
	msgInvalidCredentials    = "invalid login or password"
	msgAccountDeactivated    = "this account has been deactivated"
	msgFailedToGenerateToken = "failed to generate token"
	msgInternalServerError   = "Internal server error"
	msgInvalidLogin          = "login must be alphanumeric with at least 6 characters"
	msgInvalidRole           = "unknown role"
	msgUserNotFound          = "user not found"
	msgCannotDeleteSelf      = "you cannot delete your own account"
	msgCannotDeleteLastAdmin = "cannot delete the last admin account"
	msgUserCreated           = "User created successfully."
)

var loginPattern = regexp.MustCompile(`^[a-zA-Z0-9]{6,}$`)

func sendJSONResponse(ctx *gin.Context, status int, data gin.H) {
	ctx.JSON(status, data)
}

func sendErrorResponse(ctx *gin.Context, status int, message string) {
	sendJSONResponse(ctx, status, gin.H{"message": message})
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func comparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func generateJWT(user models.User, sessionToken string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"login":   user.Login,
		"role":    user.Role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(time.Hour * 12).Unix(),
	}
	if sessionToken != "" {
		claims["session_token"] = sessionToken
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := os.Getenv("JWT_SECRET")
	return token.SignedString([]byte(jwtSecret))
}

func findUserByLogin(login string) (models.User, error) {
	var user models.User
	result := initializers.DB.Where("login = ?", login).First(&user)
	return user, result.Error
}

// Login authenticates any actor. Table accounts additionally get a fresh
// table session whose token travels inside the JWT, so the expiry guard
// can find it on every request.
func Login(ctx *gin.Context) {
	var loginData models.LoginData
	if err := ctx.ShouldBindJSON(&loginData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	user, err := findUserByLogin(loginData.Login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		} else {
			log.Println("Database error during login:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		}
		return
	}

	if err := comparePasswords(user.Password, loginData.Password); err != nil {
		sendErrorResponse(ctx, http.StatusUnauthorized, msgInvalidCredentials)
		return
	}

	if !user.Active {
		sendErrorResponse(ctx, http.StatusForbidden, msgAccountDeactivated)
		return
	}

	sessionToken := ""
	if user.IsTable() {
		session, err := models.NewTableSession(initializers.DB, user.ID)
		if err != nil {
			log.Println("Failed to open table session:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
			return
		}
		sessionToken = session.SessionToken
	}

	token, err := generateJWT(user, sessionToken)
	if err != nil {
		log.Println("Token generation error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToGenerateToken)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"login": user.Login,
			"role":  user.Role,
		},
	})
}

// ===== Admin CRUD over users =====

type createUserData struct {
	Login    string `json:"login" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
}

func CreateUser(ctx *gin.Context) {
	var data createUserData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	if !loginPattern.MatchString(data.Login) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidLogin)
		return
	}
	if !models.ValidRole(data.Role) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidRole)
		return
	}

	var existing models.User
	result := initializers.DB.Where("login = ?", data.Login).Find(&existing)
	if result.Error != nil {
		log.Println("Database error during user check:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}
	if result.RowsAffected > 0 {
		sendErrorResponse(ctx, http.StatusBadRequest, msgUserAlreadyExists)
		return
	}

	hashedPassword, err := hashPassword(data.Password)
	if err != nil {
		log.Println("Password hashing error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	user := models.User{
		Login:    data.Login,
		Password: hashedPassword,
		Role:     data.Role,
		Active:   true,
	}
	if result := initializers.DB.Create(&user); result.Error != nil {
		log.Println("User creation error:", result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, msgInternalServerError)
		return
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": msgUserCreated,
		"id":      user.ID,
	})
}

func GetUsers(ctx *gin.Context) {
	query := initializers.DB.Model(&models.User{})

	if search := ctx.Query("search"); search != "" {
		query = query.Where("login LIKE ?", "%"+search+"%")
	}
	if role := ctx.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	var users []models.User
	if result := query.Order("created_at desc").Find(&users); result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Unable to fetch users", result.Error)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"users": users})
}

func GetUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		} else {
			respondWithError(ctx, http.StatusInternalServerError, msgInternalServerError, err)
		}
		return
	}

	data := gin.H{"user": user}

	// Table accounts carry order statistics
	if user.IsTable() {
		var stats struct {
			Total   int64 `json:"total"`
			Pending int64 `json:"pending"`
			Served  int64 `json:"served"`
			Paid    int64 `json:"paid"`
		}
		orders := initializers.DB.Model(&models.Order{}).Where("table_id = ?", user.ID)
		orders.Count(&stats.Total)
		orders.Where("status = ?", models.StatusPending).Count(&stats.Pending)
		initializers.DB.Model(&models.Order{}).Where("table_id = ? AND status = ?", user.ID, models.StatusServed).Count(&stats.Served)
		initializers.DB.Model(&models.Order{}).Where("table_id = ? AND status = ?", user.ID, models.StatusPaid).Count(&stats.Paid)
		data["orderStats"] = stats
	}

	sendJSONResponse(ctx, http.StatusOK, data)
}

type updateUserData struct {
	Login string `json:"login"`
	Role  string `json:"role"`
}

func UpdateUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var data updateUserData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	if data.Login != "" {
		if !loginPattern.MatchString(data.Login) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidLogin)
			return
		}
		user.Login = data.Login
	}
	if data.Role != "" {
		if !models.ValidRole(data.Role) {
			sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidRole)
			return
		}
		user.Role = data.Role
	}

	if err := initializers.DB.Save(&user).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update user", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User updated successfully.", "user": user})
}

func ToggleUserStatus(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	user.Active = !user.Active
	if err := initializers.DB.Save(&user).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to update user status", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User status updated.", "active": user.Active})
}

func DeleteUser(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	callerID, _ := currentUserID(ctx)
	if callerID == uint(userId) {
		sendErrorResponse(ctx, http.StatusBadRequest, msgCannotDeleteSelf)
		return
	}

	var user models.User
	if err := initializers.DB.First(&user, userId).Error; err != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	if user.IsAdmin() {
		var adminCount int64
		initializers.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&adminCount)
		if adminCount <= 1 {
			sendErrorResponse(ctx, http.StatusBadRequest, msgCannotDeleteLastAdmin)
			return
		}
	}

	// Expenses keep a NULL recorder when staff is removed
	if err := initializers.DB.Model(&models.Expense{}).
		Where("recorded_by_id = ?", user.ID).
		Update("recorded_by_id", nil).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to detach expenses", err)
		return
	}

	if err := initializers.DB.Delete(&user).Error; err != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to delete user", err)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "User deleted successfully."})
}

type resetPasswordData struct {
	Password string `json:"password" binding:"required,min=6"`
}

func ResetUserPassword(ctx *gin.Context) {
	userId, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse userId")
		return
	}

	var data resetPasswordData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	hashedPassword, err := hashPassword(data.Password)
	if err != nil {
		sendErrorResponse(ctx, http.StatusInternalServerError, msgFailedToHashPassword)
		return
	}

	result := initializers.DB.Model(&models.User{}).
		Where("id = ?", userId).
		Update("password", hashedPassword)
	if result.Error != nil {
		respondWithError(ctx, http.StatusInternalServerError, "Failed to reset password", result.Error)
		return
	}
	if result.RowsAffected == 0 {
		sendErrorResponse(ctx, http.StatusNotFound, msgUserNotFound)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"message": "Password reset successfully."})
}
