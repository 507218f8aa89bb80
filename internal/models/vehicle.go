package models

import (
	"gorm.io/gorm"
)

type EnergyType string

const (
	EnergyElectric EnergyType = "electrique"
	EnergyHybrid   EnergyType = "hybride"
	EnergyPetrol   EnergyType = "essence"
	EnergyDiesel   EnergyType = "diesel"
)

// Vehicle belongs to exactly one owner. Once a ride cites it the record is
// treated as immutable: deletion is refused while any ride references it.
type Vehicle struct {
	gorm.Model
	OwnerID   uint   `json:"utilisateur_id" gorm:"not null;index"`
	Owner     User   `json:"-"`
	Brand     string `json:"marque_libelle"`
	ModelName string `json:"modele" gorm:"column:model_name;not null"`
	Color     string `json:"couleur"`
	Energy    string `json:"energie" gorm:"not null"`
	Plate     string `json:"immatriculation" gorm:"uniqueIndex;not null"`
	Seats     int    `json:"nb_place" gorm:"not null"`
}

func ValidEnergy(e string) bool {
	switch EnergyType(e) {
	case EnergyElectric, EnergyHybrid, EnergyPetrol, EnergyDiesel:
		return true
	}
	return false
}
