package tests

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/sahyadri/classai/core/timetable"
	"github.com/sahyadri/classai/core/user"
)

func Test_timetableApi_create(t *testing.T) {
	admin := createUser(t, "Sched Admin", "schedadmin", "schedadmin@test.in", "Str0ng-Pa55", user.AdminRoles, true)
	teacher := createUser(t, "Sched Teacher", "schedteacher", "schedteacher@test.in", "Str0ng-Pa55", user.TeacherRoles, true)

	body := func(day, start, end, subject string) []byte {
		return marchallObj(t, timetable.NewEntry{Day: day, StartTime: start, EndTime: end, Subject: subject})
	}

	tests := []httpTest{
		{name: "Auth required", body: body("Friday", "09:00", "09:45", "Math"), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Admin required", body: body("Friday", "09:00", "09:45", "Math"), token: getToken(t, teacher),
			wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden),
		},
		{name: "Entry scheduled", body: body("Friday", "09:00", "09:45", "Math"), token: getToken(t, admin), wantCode: http.StatusCreated},
		{name: "Overlap rejected", body: body("Friday", "09:30", "10:15", "EVS"), token: getToken(t, admin), wantCode: http.StatusBadRequest},
		{name: "Bad day name", body: body("Funday", "09:00", "09:45", "Math"), token: getToken(t, admin), wantCode: http.StatusBadRequest},
		{name: "Bad time format", body: body("Friday", "9am", "10am", "Math"), token: getToken(t, admin), wantCode: http.StatusBadRequest},
		{name: "Start not before end", body: body("Friday", "11:00", "10:00", "Math"), token: getToken(t, admin), wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/api/timetable", tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_timetableApi_live(t *testing.T) {
	teacher := createUser(t, "Live Teacher", "liveteacher", "liveteacher@test.in", "Str0ng-Pa55", user.TeacherRoles, true)
	admin := createUser(t, "Live Admin", "liveadmin", "liveadmin@test.in", "Str0ng-Pa55", user.AdminRoles, true)

	t.Run("no class in session", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/api/timetable/live", getToken(t, teacher))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}

		var resp struct {
			Live *timetable.Entry `json:"live"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		if resp.Live != nil {
			t.Errorf("failed! live = %v; want null", resp.Live)
		}
	})

	t.Run("class in session", func(t *testing.T) {
		// the stub resolver pins today to Monday; an all-day entry is
		// guaranteed to contain the current wall clock time
		body := marchallObj(t, timetable.NewEntry{Day: "Monday", StartTime: "00:00", EndTime: "23:59", Subject: "Math"})
		req, rec := newAuthRequest(http.MethodPost, "/api/timetable", getToken(t, admin), body)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("scheduling: code = %v; body = %v", rec.Code, rec.Body.String())
		}

		req, rec = newAuthRequest(http.MethodGet, "/api/timetable/live", getToken(t, teacher))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; body = %v", rec.Code, rec.Body.String())
		}

		var resp struct {
			Live *timetable.Entry `json:"live"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		if resp.Live == nil || resp.Live.Subject != "Math" {
			t.Errorf("failed! live = %v; want the Math class", resp.Live)
		}
	})
}
