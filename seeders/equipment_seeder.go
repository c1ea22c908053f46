package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

type equipmentSeed struct {
	Name          string
	EquipmentType string
	Category      string
	SerialNumber  string
	QRCode        *string
}

func qrSeed(code string) *string { return &code }

// Only frequent-type equipment carries a QR code; non-frequent items
// are identified by serial number alone.
var equipmentSeeds = []equipmentSeed{
	{"Maintenance Laptop", "frequent", "technological", "SN-LAP-0001", qrSeed("HSR-SEEDLAP0001")},
	{"Diagnostic Cart", "frequent", "technological", "SN-CART-0001", qrSeed("HSR-SEEDCART001")},
	{"Portable Ultrasound", "non_frequent", "biomedical", "SN-US-0001", nil},
	{"Infusion Pump", "non_frequent", "biomedical", "SN-PUMP-0001", nil},
	{"Network Analyzer", "non_frequent", "technological", "SN-NET-0001", nil},
}

// SeedEquipment inserts a small demo equipment registry. Rows already
// present (by serial number) are left untouched.
func SeedEquipment(db *pgxpool.Pool) error {
	ctx := context.Background()
	log.Println("  - running equipment seeder...")

	query := `
		INSERT INTO equipments (name, equipment_type, category, serial_number, qr_code, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (serial_number) WHERE serial_number IS NOT NULL DO NOTHING
	`
	for _, e := range equipmentSeeds {
		if _, err := db.Exec(ctx, query, e.Name, e.EquipmentType, e.Category, e.SerialNumber, e.QRCode); err != nil {
			return err
		}
	}

	log.Printf("    seeded %d equipment entries", len(equipmentSeeds))
	return nil
}
