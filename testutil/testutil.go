// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/fitlog/cliparse"
	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
	_ "modernc.org/sqlite"
)

// TestJWTSecret signs every token minted by MakeToken.
const TestJWTSecret = "test-jwt-secret"

// SetupTestDB opens a private in-memory sqlite database with the full schema.
// It is closed automatically when the test ends.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open("sqlite", "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore returns a Store over SetupTestDB with the default catalog seeded.
func SetupTestStore(t *testing.T) *db.Store {
	t.Helper()

	store := db.NewStore(SetupTestDB(t), zaptest.NewLogger(t))
	if err := store.SeedDefaults(context.Background()); err != nil {
		t.Fatalf("Failed to seed defaults: %v", err)
	}
	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         8080,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		JWTSecret:    TestJWTSecret,
		GenAIModel:   cliparse.DefaultGenAIModel,
		AssignDelay:  time.Millisecond,
		Env:          "test",
	}
}

// MakeToken mints an HS256 token for userID.
func MakeToken(t *testing.T, userID string) string {
	t.Helper()

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}

// AuthHeader returns request headers carrying a bearer token for userID.
func AuthHeader(t *testing.T, userID string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + MakeToken(t, userID)}
}

// CreateTestSleep stores an eight hour night ending on date.
func CreateTestSleep(t *testing.T, store *db.Store, userID, date string) models.SleepRecord {
	t.Helper()

	wake, err := time.Parse("2006-01-02 15:04", date+" 07:00")
	if err != nil {
		t.Fatalf("Bad test date %q: %v", date, err)
	}
	rec := models.SleepRecord{
		UserID:          userID,
		SleepDate:       date,
		Bedtime:         wake.Add(-8 * time.Hour),
		WakeTime:        wake,
		TotalSleepHours: 8,
	}
	if err := store.CreateSleep(context.Background(), &rec); err != nil {
		t.Fatalf("Failed to create test sleep: %v", err)
	}
	return rec
}

// CreateTestMeal stores a meal with a free-text breakfast.
func CreateTestMeal(t *testing.T, store *db.Store, userID, date string) models.Meal {
	t.Helper()

	m := models.Meal{
		UserID:    userID,
		MealDate:  date,
		Breakfast: &models.MealSlot{Description: "porridge"},
	}
	if err := store.CreateMeal(context.Background(), &m); err != nil {
		t.Fatalf("Failed to create test meal: %v", err)
	}
	return m
}

// CreateTestRoutine stores a steps routine on date.
func CreateTestRoutine(t *testing.T, store *db.Store, userID, date string, steps int) models.Routine {
	t.Helper()

	r := models.Routine{
		UserID:      userID,
		RoutineDate: date,
		RoutineType: models.RoutineSteps,
		RoutineData: models.RoutineData{StepsData: &models.StepsData{Steps: steps}},
	}
	if err := store.CreateRoutine(context.Background(), &r); err != nil {
		t.Fatalf("Failed to create test routine: %v", err)
	}
	return r
}

// CreateTestTemplate stores a gym template with one exercise.
func CreateTestTemplate(t *testing.T, store *db.Store, userID string) models.RoutineTemplate {
	t.Helper()

	tpl := models.RoutineTemplate{
		UserID:      userID,
		Name:        "Leg day",
		RoutineType: models.RoutineGym,
		RoutineData: models.RoutineData{GymData: &models.GymData{
			DurationMinutes: 60,
			Exercises: []models.GymExercise{
				{Name: "Back squat", Sets: []models.GymSet{{Reps: 5, WeightKg: 100}}},
			},
		}},
		Notes: "heavy",
	}
	if err := store.CreateTemplate(context.Background(), &tpl); err != nil {
		t.Fatalf("Failed to create test template: %v", err)
	}
	return tpl
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
