package dto

import (
	"time"

	"github.com/aarondl/null/v8"
)

// AccessReportRow is one line of the date-range access report, joined
// with equipment and user names for export.
type AccessReportRow struct {
	RecordID         uint64      `json:"record_id"`
	EquipmentName    string      `json:"equipment_name"`
	EquipmentSerial  null.String `json:"equipment_serial_number"`
	EquipmentQRCode  null.String `json:"equipment_qr_code"`
	Category         string      `json:"category"`
	UserFullName     string      `json:"user_full_name"`
	Status           string      `json:"status"`
	EntryTime        time.Time   `json:"entry_time"`
	ExitTime         null.Time   `json:"exit_time"`
	ExpectedExitTime time.Time   `json:"expected_exit_time"`
	Notes            null.String `json:"notes"`
}
