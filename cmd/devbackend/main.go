// Command devbackend is a throwaway in-memory rendition of the styleDecor
// REST API, just enough for developing the gateway without the real backend.
// Data lives in process memory and resets on restart.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var signingKey = []byte(envOr("DEV_JWT_SECRET", "styledecor-dev-secret"))

type account struct {
	ID           string `json:"_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	PhotoURL     string `json:"photoUrl,omitempty"`
	passwordHash []byte
}

type booking struct {
	ID             string  `json:"_id"`
	RoomID         string  `json:"roomId"`
	RoomName       string  `json:"roomName"`
	UserEmail      string  `json:"userEmail"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	Amount         float64 `json:"amount"`
	PaymentStatus  string  `json:"paymentStatus"`
	TransactionID  string  `json:"transactionId,omitempty"`
	DecoratorEmail string  `json:"decoratorEmail,omitempty"`
}

type room struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	PhotoURL    string  `json:"photoUrl"`
	Rating      float64 `json:"rating"`
}

type application struct {
	ID         string `json:"_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Experience string `json:"experience"`
	Portfolio  string `json:"portfolio,omitempty"`
	Bio        string `json:"bio"`
	Status     string `json:"status"`
}

type store struct {
	mu       sync.Mutex
	accounts map[string]*account // keyed by email
	bookings map[string]*booking
	apps     map[string]*application
	rooms    []room
}

func main() {
	s := &store{
		accounts: map[string]*account{},
		bookings: map[string]*booking{},
		apps:     map[string]*application{},
		rooms:    seedRooms(),
	}
	s.seedAccount("Admin", "admin@styledecor.dev", "Admin1234", "admin")
	s.seedAccount("Dana Decorator", "dana@styledecor.dev", "Decor1234", "decorator")
	s.seedAccount("Uma User", "uma@styledecor.dev", "User12345", "user")

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/jwt", s.issueToken)
	mux.HandleFunc("GET /users/me", s.currentUser)
	mux.HandleFunc("POST /users", s.upsertUser)
	mux.HandleFunc("GET /rooms", s.listRooms)
	mux.HandleFunc("GET /rooms/{id}", s.getRoom)
	mux.HandleFunc("GET /bookings", s.listBookings)
	mux.HandleFunc("GET /bookings/{id}", s.getBooking)
	mux.HandleFunc("POST /bookings", s.createBooking)
	mux.HandleFunc("PUT /bookings/{id}", s.updateBooking)
	mux.HandleFunc("DELETE /bookings/{id}", s.cancelBooking)
	mux.HandleFunc("POST /create-payment-intent", s.createPaymentIntent)
	mux.HandleFunc("PATCH /payments/confirm/{id}", s.confirmPayment)
	mux.HandleFunc("POST /decorator/apply", s.applyDecorator)
	mux.HandleFunc("GET /admin/bookings", s.adminBookings)
	mux.HandleFunc("GET /admin/decorators", s.adminDecorators)
	mux.HandleFunc("GET /admin/decorators/pending", s.pendingDecorators)
	mux.HandleFunc("PATCH /admin/decorators/{id}/approve", s.approveDecorator)
	mux.HandleFunc("PATCH /admin/bookings/{id}/assign", s.assignDecorator)

	addr := ":" + envOr("DEV_BACKEND_PORT", "5000")
	log.Printf("dev backend listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func (s *store) seedAccount(name, email, password, role string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed account %s: %v", email, err)
	}
	s.accounts[email] = &account{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		passwordHash: hash,
	}
	log.Printf("seeded %s account %s (password %s)", role, email, password)
}

func seedRooms() []room {
	return []room{
		{ID: uuid.NewString(), Name: "Living Room Refresh", Description: "Full styling of your living room with seasonal accents.", Category: "Home", Price: 249, Rating: 4.7},
		{ID: uuid.NewString(), Name: "Wedding Venue Setup", Description: "Complete ceremony and reception decoration.", Category: "Events", Price: 1899, Rating: 4.9},
		{ID: uuid.NewString(), Name: "Birthday Party Package", Description: "Balloons, backdrops and table styling for up to 40 guests.", Category: "Events", Price: 399, Rating: 4.5},
		{ID: uuid.NewString(), Name: "Office Reception Makeover", Description: "First-impression styling for your front of house.", Category: "Commercial", Price: 749, Rating: 4.6},
	}
}

// ---- auth ----

func (s *store) issueToken(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		IDToken  string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	acct := s.accounts[req.Email]
	s.mu.Unlock()
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// SSO exchanges arrive with an idToken instead of a password. The real
	// backend verifies it against the IdP; here presence is enough.
	if req.IDToken == "" {
		if err := bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(req.Password)); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
	}

	claims := jwt.MapClaims{
		"sub":   acct.ID,
		"email": acct.Email,
		"role":  acct.Role,
		"exp":   time.Now().Add(2 * time.Hour).Unix(),
		"iat":   time.Now().Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signingKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	// The real backend has shipped the token under different names over
	// time; DEV_TOKEN_FIELD reproduces any of them.
	writeJSON(w, http.StatusOK, map[string]string{envOr("DEV_TOKEN_FIELD", "token"): signed})
}

func (s *store) authenticate(r *http.Request) *account {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		return nil
	}
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return signingKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	email, _ := claims["email"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accounts[email]
}

func (s *store) currentUser(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	// Wrapped shape, matching the deployed backend.
	writeJSON(w, http.StatusOK, map[string]any{"user": acct})
}

func (s *store) upsertUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		PhotoURL string `json:"photoUrl"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acct := s.accounts[req.Email]
	if acct == nil {
		acct = &account{ID: uuid.NewString(), Email: req.Email, Role: "user"}
		s.accounts[req.Email] = acct
	}
	if req.Name != "" {
		acct.Name = req.Name
	}
	if req.PhotoURL != "" {
		acct.PhotoURL = req.PhotoURL
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to hash password")
			return
		}
		acct.passwordHash = hash
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": acct})
}

// ---- catalog ----

func (s *store) listRooms(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.rooms)
}

func (s *store) getRoom(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rm := range s.rooms {
		if rm.ID == id {
			writeJSON(w, http.StatusOK, rm)
			return
		}
	}
	writeError(w, http.StatusNotFound, "room not found")
}

// ---- bookings ----

func (s *store) listBookings(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	out := []booking{}
	for _, b := range s.bookings {
		switch acct.Role {
		case "admin":
			out = append(out, *b)
		case "decorator":
			if b.DecoratorEmail == acct.Email {
				out = append(out, *b)
			}
		default:
			if b.UserEmail == acct.Email {
				out = append(out, *b)
			}
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *store) getBooking(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bookings[r.PathValue("id")]
	if b == nil {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *store) createBooking(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		RoomID   string  `json:"roomId"`
		RoomName string  `json:"roomName"`
		Date     string  `json:"date"`
		Amount   float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RoomID == "" || req.Date == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	b := &booking{
		ID:            uuid.NewString(),
		RoomID:        req.RoomID,
		RoomName:      req.RoomName,
		UserEmail:     acct.Email,
		Date:          req.Date,
		Status:        "pending",
		Amount:        req.Amount,
		PaymentStatus: "unpaid",
	}
	s.mu.Lock()
	s.bookings[b.ID] = b
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, b)
}

func (s *store) updateBooking(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Status         string `json:"status"`
		DecoratorEmail string `json:"decoratorEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bookings[r.PathValue("id")]
	if b == nil {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	if req.Status != "" {
		b.Status = req.Status
	}
	if req.DecoratorEmail != "" {
		b.DecoratorEmail = req.DecoratorEmail
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *store) cancelBooking(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bookings[r.PathValue("id")]
	if b == nil || (acct.Role != "admin" && b.UserEmail != acct.Email) {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	b.Status = "cancelled"
	writeJSON(w, http.StatusOK, b)
}

// ---- payments ----

func (s *store) createPaymentIntent(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		Amount    int64  `json:"amount"`
		BookingID string `json:"bookingId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.BookingID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"clientSecret": "dev_secret_" + uuid.NewString(),
	})
}

func (s *store) confirmPayment(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req struct {
		TransactionID string `json:"transactionId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TransactionID == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bookings[r.PathValue("id")]
	if b == nil {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	b.PaymentStatus = "paid"
	b.TransactionID = req.TransactionID
	writeJSON(w, http.StatusOK, b)
}

// ---- decorator recruitment ----

func (s *store) applyDecorator(w http.ResponseWriter, r *http.Request) {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var app application
	if err := json.NewDecoder(r.Body).Decode(&app); err != nil || app.Name == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	app.ID = uuid.NewString()
	app.Email = acct.Email
	app.Status = "pending"

	s.mu.Lock()
	s.apps[app.ID] = &app
	s.mu.Unlock()
	writeJSON(w, http.StatusCreated, app)
}

// ---- admin ----

func (s *store) requireAdmin(w http.ResponseWriter, r *http.Request) *account {
	acct := s.authenticate(r)
	if acct == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return nil
	}
	if acct.Role != "admin" {
		writeError(w, http.StatusForbidden, "admin only")
		return nil
	}
	return acct
}

func (s *store) adminBookings(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []booking{}
	for _, b := range s.bookings {
		out = append(out, *b)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *store) adminDecorators(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []account{}
	for _, a := range s.accounts {
		if a.Role == "decorator" {
			out = append(out, *a)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *store) pendingDecorators(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []application{}
	for _, a := range s.apps {
		if a.Status == "pending" {
			out = append(out, *a)
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *store) approveDecorator(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	app := s.apps[r.PathValue("id")]
	if app == nil {
		writeError(w, http.StatusNotFound, "application not found")
		return
	}
	app.Status = "approved"
	if acct := s.accounts[app.Email]; acct != nil {
		acct.Role = "decorator"
	}
	writeJSON(w, http.StatusOK, app)
}

func (s *store) assignDecorator(w http.ResponseWriter, r *http.Request) {
	if s.requireAdmin(w, r) == nil {
		return
	}
	var req struct {
		DecoratorEmail string `json:"decoratorEmail"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DecoratorEmail == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.bookings[r.PathValue("id")]
	if b == nil {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	b.DecoratorEmail = req.DecoratorEmail
	b.Status = "assigned"
	writeJSON(w, http.StatusOK, b)
}

// ---- helpers ----

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
