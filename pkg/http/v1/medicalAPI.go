package v1

import (
	"net/http"
	"time"

	"github.com/coneno/logger"
	"github.com/gin-gonic/gin"
	mw "github.com/umoor-sehhat/sehhat-backend/pkg/http/middlewares"
	"github.com/umoor-sehhat/sehhat-backend/pkg/jwt"
	"github.com/umoor-sehhat/sehhat-backend/pkg/types"
	"github.com/umoor-sehhat/sehhat-backend/pkg/visibility"
	"go.mongodb.org/mongo-driver/bson"
)

func (h *HttpEndpoints) AddMedicalAPI(rg *gin.RouterGroup) {
	doctorsGroup := rg.Group("/doctors")
	doctorsGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	doctorsGroup.Use(mw.ValidateToken())
	{
		doctorsGroup.GET("", h.getDoctorProfiles) // ?mozeKey=value&specialty=value
		doctorsGroup.POST("", mw.RequirePayload(), h.saveDoctorProfile)
		doctorsGroup.GET(":profileID/verify", mw.IsAdmin(), mw.RequireQueryParams([]string{"value"}), h.changeDoctorVerifiedStatus) // ?value=true
	}

	recordsGroup := rg.Group("/patient-records")
	recordsGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	recordsGroup.Use(mw.ValidateToken())
	{
		recordsGroup.GET("", h.getPatientRecords)
		recordsGroup.POST("", mw.RequirePayload(), h.addPatientRecord)
		recordsGroup.GET(":recordID", h.getPatientRecord)
	}
}

// The doctor directory is readable by every authenticated account.
func (h *HttpEndpoints) getDoctorProfiles(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)

	filter := bson.M{}
	if mozeKey := c.DefaultQuery("mozeKey", ""); mozeKey != "" {
		filter["mozeKey"] = mozeKey
	}
	if specialty := c.DefaultQuery("specialty", ""); specialty != "" {
		filter["specialty"] = specialty
	}

	profiles, err := h.sehhatDB.FindDoctorProfiles(filter)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusOK, gin.H{"doctors": []types.DoctorProfile{}})
		return
	}
	logger.Info.Printf("doctor directory fetched by '%s'", token.ID)

	c.JSON(http.StatusOK, gin.H{"doctors": profiles})
}

func (h *HttpEndpoints) saveDoctorProfile(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()

	var req types.DoctorProfile
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ITSNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "itsNumber must be defined"})
		return
	}
	if !principal.IsAdmin() && principal.Role != types.ROLE_DOCTOR {
		c.JSON(http.StatusForbidden, gin.H{"error": "doctor account required for this feature"})
		return
	}

	// Verification is granted separately by admins.
	if !principal.IsAdmin() {
		req.Verified = false
	}
	if req.CreatedAt == 0 {
		req.CreatedAt = time.Now().Unix()
	}

	profile, err := h.sehhatDB.SaveDoctorProfile(req)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("doctor profile %s saved by '%s'", profile.ID.Hex(), token.ID)

	c.JSON(http.StatusOK, profile)
}

func (h *HttpEndpoints) changeDoctorVerifiedStatus(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	profileID := c.Param("profileID")

	verified := c.DefaultQuery("value", "") == "true"

	if err := h.sehhatDB.SetDoctorVerifiedStatus(profileID, verified); err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("doctor profile %s verified status set to %t by '%s'", profileID, verified, token.ID)

	c.JSON(http.StatusOK, gin.H{"message": "verified status updated"})
}

func (h *HttpEndpoints) addPatientRecord(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()

	if !principal.IsAdmin() && principal.Role != types.ROLE_DOCTOR {
		c.JSON(http.StatusForbidden, gin.H{"error": "doctor account required for this feature"})
		return
	}

	var req types.PatientRecord
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error.Printf("error: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.PatientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "patientID must be defined"})
		return
	}

	req.DoctorID = principal.ID.Hex()
	req.CreatedAt = time.Now().Unix()

	id, err := h.sehhatDB.AddPatientRecord(req)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err})
		return
	}
	logger.Info.Printf("patient record %s added by '%s'", id, token.ID)

	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *HttpEndpoints) getPatientRecords(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()

	// Same union shape as content listings: own records (as patient or as
	// treating doctor) plus records of managed mozes; admins unrestricted.
	filter := bson.M{}
	if !principal.IsAdmin() {
		id := principal.ID.Hex()
		clauses := bson.A{
			bson.M{"patientID": id},
			bson.M{"doctorID": id},
		}
		if managed := principal.ManagedMozes; principal.IsManagingStaff() && len(managed) > 0 {
			clauses = append(clauses, bson.M{"mozeKey": bson.M{"$in": managed}})
		}
		filter = bson.M{"$or": clauses}
	}

	records, err := h.sehhatDB.FindPatientRecords(filter)
	if err != nil {
		logger.Error.Printf("%v", err)
		c.JSON(http.StatusOK, gin.H{"records": []types.PatientRecord{}})
		return
	}
	logger.Info.Printf("patient records fetched by '%s'", token.ID)

	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *HttpEndpoints) getPatientRecord(c *gin.Context) {
	token := c.MustGet("validatedToken").(*jwt.UserClaims)
	principal := token.Principal()
	recordID := c.Param("recordID")

	record, err := h.sehhatDB.FindPatientRecordByID(recordID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if !visibility.CanReadPatientRecord(principal, record) {
		logger.Warning.Printf("user %s tried to read patient record %s without permission", token.ID, recordID)
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}
