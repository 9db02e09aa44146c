package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"finanzas/models"
)

// RegisterUser creates a user with a bcrypt-hashed password. Email
// uniqueness is pre-checked optimistically; the unique index catches the
// race and is reported the same way.
func (s *Server) RegisterUser(u models.User, password string) (models.User, error) {
	u.Email = strings.TrimSpace(strings.ToLower(u.Email))
	if u.Email == "" {
		return models.User{}, fmt.Errorf("email required")
	}
	if len(password) < 6 { // basic password policy
		return models.User{}, fmt.Errorf("password too short (min 6)")
	}
	var existing models.User
	if err := s.db.Where("email = ?", u.Email).First(&existing).Error; err == nil {
		return models.User{}, fmt.Errorf("user already exists")
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	u.HashedPassword = hashedPassword
	if err := s.db.Create(&u).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return models.User{}, fmt.Errorf("user already exists")
		}
		return models.User{}, err
	}
	return u, nil
}

func (s *Server) Authenticate(email, password string) (models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") ||
		strings.Contains(s, "UNIQUE constraint") || strings.Contains(s, "already exists")
}

// mintToken issues an HS256 access token whose subject is the user id.
func (s *Server) mintToken(userID uint) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// jwtAuthMiddleware verifies the bearer token and stores the subject user id
// in the request context. Requests without a valid subject are rejected
// before any handler runs.
func (s *Server) jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			respondError(c, http.StatusUnauthorized, codeUnauthorized, "missing or invalid Authorization header")
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return s.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			respondError(c, http.StatusUnauthorized, codeUnauthorized, "invalid token")
			c.Abort()
			return
		}
		subject, err := token.Claims.GetSubject()
		if err != nil {
			respondError(c, http.StatusUnauthorized, codeUnauthorized, "invalid claims")
			c.Abort()
			return
		}
		userID, err := strconv.ParseUint(subject, 10, 64)
		if err != nil || userID == 0 {
			respondError(c, http.StatusUnauthorized, codeUnauthorized, "invalid subject")
			c.Abort()
			return
		}
		c.Set("userID", uint(userID))
		c.Next()
	}
}

// currentUserID fetches the authenticated user id set by jwtAuthMiddleware.
func currentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
