package v1

import (
	"github.com/umoor-sehhat/sehhat-backend/pkg/db"
)

type HttpEndpoints struct {
	sehhatDB        *db.SehhatDBService
	apiKeys         []string
	adminITSNumbers []string
}

func NewHTTPHandler(
	sehhatDB *db.SehhatDBService,
	apiKeys []string,
	adminITSNumbers []string,
) *HttpEndpoints {
	return &HttpEndpoints{
		sehhatDB:        sehhatDB,
		apiKeys:         apiKeys,
		adminITSNumbers: adminITSNumbers,
	}
}
