package controllers

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"wastebank/config"
	"wastebank/middleware"
	"wastebank/models"
	"wastebank/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var foundUser models.User
	err := config.UserCollection.FindOne(ctx, bson.M{"email": strings.ToLower(input.Email)}).Decode(&foundUser)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	err = utils.VerifyPassword(foundUser.Password, input.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(foundUser.ID.Hex(), foundUser.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error while generating token"})
		return
	}

	session := models.Session{
		UserID:    foundUser.ID,
		Role:      foundUser.Role,
		IP:        c.ClientIP(),
		Device:    c.Request.UserAgent(),
		Timestamp: time.Now(),
	}
	_, err = config.SessionCollection.InsertOne(ctx, session)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error recording session"})
		return
	}

	c.SetCookie("token", token, 3600*24, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"userID":   foundUser.ID.Hex(),
		"role":     foundUser.Role,
		"fullname": foundUser.Fullname,
	})
}

func Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Gender != "male" && input.Gender != "female" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Gender must be male or female"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(input.Email)
	count, err := config.UserCollection.CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking email"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already in use"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	// Balance is never stored; it is derived from transactions.
	user := models.User{
		Fullname:  input.Fullname,
		Address:   input.Address,
		Email:     email,
		Gender:    input.Gender,
		Role:      "client",
		Password:  hashed,
		CreatedAt: time.Now(),
	}

	res, err := config.UserCollection.InsertOne(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "id": res.InsertedID})
}

// AuthMe resolves the caller's token into {user, role}. This is the
// session probe the SPA calls while its route guards are in the
// pending state.
func AuthMe(c *gin.Context) {
	token, ok := middleware.ExtractToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization token not provided"})
		return
	}

	claims, err := utils.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization token"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err = config.UserCollection.FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User no longer exists"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error retrieving user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "role": user.Role})
}

// Temporary storage for verification codes. Gin runs handlers
// concurrently, so every access goes through the mutex.
var (
	codeMu            sync.Mutex
	verificationCodes = make(map[string]string)
	codeExpiry        = make(map[string]time.Time)
)

func generateVerificationCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

func storeVerificationCode(email, code string) {
	codeMu.Lock()
	defer codeMu.Unlock()
	verificationCodes[email] = code
	codeExpiry[email] = time.Now().Add(2 * time.Minute)
}

func clearVerificationCode(email string) {
	codeMu.Lock()
	defer codeMu.Unlock()
	delete(verificationCodes, email)
	delete(codeExpiry, email)
}

// RequestPasswordReset handles password reset requests
func RequestPasswordReset(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(input.Email)
	var user models.User
	err := config.UserCollection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	code := generateVerificationCode()
	storeVerificationCode(email, code)

	body := fmt.Sprintf("Your verification code is %s. It expires in 2 minutes. Do not share it with anyone.", code)
	err = utils.SendEmail(email, "Password reset code", body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification code sent"})
}

func checkVerificationCode(email, code string) bool {
	codeMu.Lock()
	defer codeMu.Unlock()

	stored, ok := verificationCodes[email]
	if !ok || stored != code {
		return false
	}
	if time.Now().After(codeExpiry[email]) {
		delete(verificationCodes, email)
		delete(codeExpiry, email)
		return false
	}
	return true
}

func VerifyCode(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
		Code  string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !checkVerificationCode(strings.ToLower(input.Email), input.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Code verified"})
}

func ResetPassword(c *gin.Context) {
	var input struct {
		Email       string `json:"email" binding:"required"`
		Code        string `json:"code" binding:"required"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(input.Email)
	if !checkVerificationCode(email, input.Code) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired code"})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error hashing password"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = config.UserCollection.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"password": hashed}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	clearVerificationCode(email)

	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
