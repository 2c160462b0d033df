package gate

import "github.com/Conversly/community-api/internal/types"

type ScanRequest struct {
	QRToken string `json:"qrToken" binding:"required,max=64"`
	Gate    string `json:"gate" binding:"max=40"`
}

// ManualRequest records a pass for someone who cannot present their code.
type ManualRequest struct {
	PersonType types.PersonType `json:"personType" binding:"required,oneof=resident employee provider guest"`
	PersonID   string           `json:"personId" binding:"required"`
	Gate       string           `json:"gate" binding:"max=40"`
	Note       string           `json:"note" binding:"required,max=200"`
}

type InsideResponse struct {
	Count  int               `json:"count"`
	People []types.GateEntry `json:"people"`
}
