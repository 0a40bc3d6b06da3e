package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/amara-chambers/amara-law-api/config"
	"github.com/amara-chambers/amara-law-api/models"
)

func seedCase(t *testing.T, db *gorm.DB, status, priority string, client, lawyer, admin models.User, fileNumber string) {
	caseRecord := models.Case{
		CaseName:    "Matter " + fileNumber,
		FileNumber:  fileNumber,
		ClientID:    client.ID,
		LawyerID:    lawyer.ID,
		Status:      status,
		Priority:    priority,
		StartDate:   time.Now(),
		CreatedByID: admin.ID,
	}
	if err := db.Create(&caseRecord).Error; err != nil {
		t.Fatalf("Failed to seed case: %v", err)
	}
}

func TestGetAppointmentStatistics(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := seedUser(t, db, "auth0|admin", "Admin", "admin@amara.law", "admin")

	seedAppointment(t, db, models.Appointment{Status: models.AppointmentPending})
	seedAppointment(t, db, models.Appointment{Status: models.AppointmentPending})
	seedAppointment(t, db, models.Appointment{Status: models.AppointmentApproved})
	seedAppointment(t, db, models.Appointment{Status: models.AppointmentCompleted})
	seedAppointment(t, db, models.Appointment{Status: models.AppointmentRejected})

	router := setupTestRouter()
	router.GET("/statistics/appointments", mockAuthMiddleware(admin.Auth0ID, "admin", "token"), GetAppointmentStatistics)

	req, _ := http.NewRequest(http.MethodGet, "/statistics/appointments", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(2), data["pendingAppointments"])
	// Completed appointments count into the approved bucket
	assert.Equal(t, float64(2), data["approvedAppointments"])
	assert.Equal(t, float64(1), data["rejectedAppointments"])
}

func TestGetBlogStatistics(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := seedUser(t, db, "auth0|admin", "Admin", "admin@amara.law", "admin")
	prolific := seedUser(t, db, "auth0|prolific", "Prolific Lawyer", "p@amara.law", "lawyer")
	occasional := seedUser(t, db, "auth0|occasional", "Occasional Lawyer", "o@amara.law", "lawyer")

	// Two approved family law posts and one approved criminal law post
	seedBlog(t, db, models.Blog{LawyerID: prolific.ID, Status: models.BlogApproved, PracticeArea: "Family Law"})
	seedBlog(t, db, models.Blog{LawyerID: prolific.ID, Status: models.BlogApproved, PracticeArea: "Family Law"})
	seedBlog(t, db, models.Blog{LawyerID: occasional.ID, Status: models.BlogApproved, PracticeArea: "Criminal Law"})
	// Non-approved posts count in totals but not in the breakdowns
	seedBlog(t, db, models.Blog{LawyerID: occasional.ID, Status: models.BlogPending, PracticeArea: "Family Law"})
	seedBlog(t, db, models.Blog{LawyerID: occasional.ID, Status: models.BlogRejected, PracticeArea: "Tax Law"})

	router := setupTestRouter()
	router.GET("/statistics/blogs", mockAuthMiddleware(admin.Auth0ID, "admin", "token"), GetBlogStatistics)

	req, _ := http.NewRequest(http.MethodGet, "/statistics/blogs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(5), data["total"])
	assert.Equal(t, float64(3), data["approved"])
	assert.Equal(t, float64(1), data["pending"])
	assert.Equal(t, float64(1), data["rejected"])

	breakdown := data["practiceAreaBreakdown"].([]interface{})
	counts := make(map[string]float64)
	for _, row := range breakdown {
		m := row.(map[string]interface{})
		counts[m["practiceArea"].(string)] = m["count"].(float64)
	}
	assert.Equal(t, map[string]float64{"Family Law": 2, "Criminal Law": 1}, counts)

	topBloggers := data["topBloggers"].([]interface{})
	assert.Len(t, topBloggers, 2)
	first := topBloggers[0].(map[string]interface{})
	assert.Equal(t, "Prolific Lawyer", first["lawyerName"])
	assert.Equal(t, float64(2), first["count"])
	second := topBloggers[1].(map[string]interface{})
	assert.Equal(t, "Occasional Lawyer", second["lawyerName"])
	assert.Equal(t, float64(1), second["count"])
}

func TestGetBlogStatistics_TopBloggersCappedAtTen(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := seedUser(t, db, "auth0|admin", "Admin", "admin@amara.law", "admin")
	for i := 0; i < 12; i++ {
		lawyer := seedUser(t, db,
			fmt.Sprintf("auth0|lawyer%d", i),
			fmt.Sprintf("Lawyer %d", i),
			fmt.Sprintf("lawyer%d@amara.law", i),
			"lawyer")
		seedBlog(t, db, models.Blog{LawyerID: lawyer.ID, Status: models.BlogApproved})
	}

	router := setupTestRouter()
	router.GET("/statistics/blogs", mockAuthMiddleware(admin.Auth0ID, "admin", "token"), GetBlogStatistics)

	req, _ := http.NewRequest(http.MethodGet, "/statistics/blogs", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Len(t, data["topBloggers"].([]interface{}), 10)
}

func TestGetCaseStatistics(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := seedUser(t, db, "auth0|admin", "Admin", "admin@amara.law", "admin")
	client := seedUser(t, db, "auth0|client", "Client", "client@example.com", "client")
	lawyer := seedUser(t, db, "auth0|lawyer", "Lawyer", "lawyer@amara.law", "lawyer")

	seedCase(t, db, models.CaseActive, models.PriorityHigh, client, lawyer, admin, "FN-001")
	seedCase(t, db, models.CaseActive, models.PriorityLow, client, lawyer, admin, "FN-002")
	seedCase(t, db, models.CaseClosed, models.PriorityHigh, client, lawyer, admin, "FN-003")
	seedCase(t, db, models.CaseOnHold, models.PriorityUrgent, client, lawyer, admin, "FN-004")

	router := setupTestRouter()
	router.GET("/statistics/cases", mockAuthMiddleware(admin.Auth0ID, "admin", "token"), GetCaseStatistics)

	req, _ := http.NewRequest(http.MethodGet, "/statistics/cases", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	data := response["data"].(map[string]interface{})
	assert.Equal(t, float64(4), data["total"])
	assert.Equal(t, float64(2), data["active"])
	assert.Equal(t, float64(1), data["closed"])
	assert.Equal(t, float64(0), data["pending"])
	assert.Equal(t, float64(1), data["onHold"])

	breakdown := data["priorityBreakdown"].([]interface{})
	counts := make(map[string]float64)
	for _, row := range breakdown {
		m := row.(map[string]interface{})
		counts[m["priority"].(string)] = m["count"].(float64)
	}
	assert.Equal(t, map[string]float64{"high": 2, "low": 1, "urgent": 1}, counts)
}

func TestStatistics_EmptyDatabase(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)

	admin := seedUser(t, db, "auth0|admin", "Admin", "admin@amara.law", "admin")

	router := setupTestRouter()
	auth := mockAuthMiddleware(admin.Auth0ID, "admin", "token")
	router.GET("/statistics/appointments", auth, GetAppointmentStatistics)
	router.GET("/statistics/blogs", auth, GetBlogStatistics)
	router.GET("/statistics/cases", auth, GetCaseStatistics)

	for _, path := range []string{"/statistics/appointments", "/statistics/blogs", "/statistics/cases"} {
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)

		var response map[string]interface{}
		json.Unmarshal(w.Body.Bytes(), &response)
		assert.True(t, response["success"].(bool), path)
	}
}
