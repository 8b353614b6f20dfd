package main

import (
	"net/http"
	"strconv"
	"strings"

	"paytracker/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var jwtSecret []byte // loaded from config in newRouter

func setupRoutes(r *gin.Engine) {
	r.GET("/healthz", healthHandler)
	auth := r.Group("/auth")
	auth.POST("/register", registerHandler)
	auth.POST("/login", loginHandler)

	tx := r.Group("/transaction")
	tx.Use(requireUser())
	tx.POST("", createTransactionHandler)
	tx.GET("", listTransactionsHandler)
	tx.GET("/:id", getTransactionHandler)
	tx.PATCH("/:id", patchTransactionHandler)
	tx.PUT("/:id", replaceTransactionHandler)
	tx.DELETE("/:id", deleteTransactionHandler)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// authMiddleware runs on every request. A missing Authorization header lets
// the request continue unauthenticated; a present but invalid token aborts
// with the 401 envelope before any handler runs.
func authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		subject, err := validateToken(jwtSecret, tokenStr)
		if err != nil {
			writeError(c, err)
			c.Abort()
			return
		}
		user, err := findUserByEmail(subject)
		if err != nil {
			writeError(c, newError(errInvalidToken, "Invalid or expired token!"))
			c.Abort()
			return
		}
		c.Set("user", user)
		c.Next()
	}
}

// requireUser guards endpoints that demand an authenticated principal.
func requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get("user"); !ok {
			writeError(c, newError(errInvalidToken, "Invalid or expired token!"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentUser fetches the principal placed in the context by authMiddleware.
func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get("user")
	user, _ := v.(*models.User)
	return user
}

// ---- auth endpoints ----

type registerReq struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func registerHandler(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	if err := registerUser(req.Name, req.Email, req.Password); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "User successfully created!"})
}

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	user, err := authenticate(req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	token, err := generateToken(jwtSecret, user)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ---- transaction endpoints ----

type transactionReq struct {
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	DueDate     models.Date            `json:"dueDate" binding:"required"`
	Type        models.TransactionType `json:"type" binding:"required"`
}

// validate covers the constraints gin's tags cannot express.
func (r transactionReq) validate() error {
	details := map[string]string{}
	if !r.Amount.IsPositive() {
		details["amount"] = "must be positive"
	}
	if !r.DueDate.After(models.Today()) {
		details["dueDate"] = "must be a future date"
	}
	if len(details) > 0 {
		return newErrorDetails(errValidation, "Validation error", details)
	}
	return nil
}

func (r transactionReq) input() transactionInput {
	return transactionInput{
		Title:       r.Title,
		Description: r.Description,
		Amount:      r.Amount,
		DueDate:     r.DueDate,
		Type:        r.Type,
	}
}

func createTransactionHandler(c *gin.Context) {
	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(c, err)
		return
	}
	tx, err := createTransaction(currentUser(c), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tx)
}

func listTransactionsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	result, err := listTransactions(currentUser(c), page, size)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// transactionID parses the :id path parameter.
func transactionID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, newError(errNotFound, "Transaction not found!")
	}
	return uint(id), nil
}

func getTransactionHandler(c *gin.Context) {
	id, err := transactionID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	tx, err := getOwnedTransaction(currentUser(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func patchTransactionHandler(c *gin.Context) {
	id, err := transactionID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var patch models.TransactionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		writeBindingError(c, err)
		return
	}
	if err := validatePatch(patch); err != nil {
		writeError(c, err)
		return
	}
	tx, err := patchTransaction(currentUser(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

// validatePatch applies the positive-amount and future-date rules to the
// fields that are actually present.
func validatePatch(p models.TransactionPatch) error {
	details := map[string]string{}
	if p.Amount != nil && !p.Amount.IsPositive() {
		details["amount"] = "must be positive"
	}
	if p.DueDate != nil && !p.DueDate.After(models.Today()) {
		details["dueDate"] = "must be a future date"
	}
	if len(details) > 0 {
		return newErrorDetails(errValidation, "Validation error", details)
	}
	return nil
}

func replaceTransactionHandler(c *gin.Context) {
	id, err := transactionID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	var req transactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(c, err)
		return
	}
	tx, err := replaceTransaction(currentUser(c), id, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tx)
}

func deleteTransactionHandler(c *gin.Context) {
	id, err := transactionID(c)
	if err != nil {
		writeError(c, err)
		return
	}
	if err := deleteTransaction(currentUser(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
