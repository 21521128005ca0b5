package rachio

import (
	"strconv"
	"strings"
	"time"
)

// Person contains the response to /person/<id>. It holds all devices registered to the account,
// including their zones.
type Person struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	Devices  []Device `json:"devices"`
	Enabled  bool     `json:"enabled"`
}

// FindDevice returns the device with the specified name. Names are matched case-insensitively.
func (p Person) FindDevice(name string) (Device, bool) {
	for _, device := range p.Devices {
		if strings.EqualFold(device.Name, name) {
			return device, true
		}
	}
	return Device{}, false
}

// Device is a Rachio irrigation controller
type Device struct {
	ID                      string         `json:"id"`
	Name                    string         `json:"name"`
	Status                  string         `json:"status,omitempty"`
	CreateDate              int64          `json:"createDate,omitempty"`
	Zones                   []Zone         `json:"zones"`
	TimeZone                string         `json:"timeZone,omitempty"`
	Latitude                float64        `json:"latitude,omitempty"`
	Longitude               float64        `json:"longitude,omitempty"`
	Zip                     string         `json:"zip,omitempty"`
	SerialNumber            string         `json:"serialNumber,omitempty"`
	MacAddress              string         `json:"macAddress,omitempty"`
	Model                   string         `json:"model,omitempty"`
	ScheduleModeType        string         `json:"scheduleModeType,omitempty"`
	Elevation               float64        `json:"elevation,omitempty"`
	ScheduleRules           []ScheduleRule `json:"scheduleRules,omitempty"`
	RainDelayStartDate      int64          `json:"rainDelayStartDate,omitempty"`
	RainDelayExpirationDate int64          `json:"rainDelayExpirationDate,omitempty"`
	Paused                  bool           `json:"paused"`
	Deleted                 bool           `json:"deleted"`
	On                      bool           `json:"on"`
	HomeKitCompatible       bool           `json:"homeKitCompatible"`
	RainSensorTripped       bool           `json:"rainSensorTripped"`
	UtcOffset               int            `json:"utcOffset,omitempty"`
}

// Created returns the time the device was registered. If the API did not report a creation date,
// ok is false.
func (d Device) Created() (created time.Time, ok bool) {
	if d.CreateDate <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(d.CreateDate), true
}

// FindZone returns the zone with the specified name. Names are matched case-insensitively.
func (d Device) FindZone(name string) (Zone, bool) {
	for _, zone := range d.Zones {
		if strings.EqualFold(zone.Name, name) {
			return zone, true
		}
	}
	return Zone{}, false
}

// Zone is a valve (and the area it irrigates) on a Device
type Zone struct {
	ID                         string        `json:"id"`
	ZoneNumber                 int           `json:"zoneNumber"`
	Name                       string        `json:"name"`
	Enabled                    bool          `json:"enabled"`
	CustomNozzle               *CustomNozzle `json:"customNozzle,omitempty"`
	AvailableWater             float64       `json:"availableWater,omitempty"`
	RootZoneDepth              float64       `json:"rootZoneDepth,omitempty"`
	ManagementAllowedDepletion float64       `json:"managementAllowedDepletion,omitempty"`
	Efficiency                 float64       `json:"efficiency,omitempty"`
	YardAreaSquareFeet         int           `json:"yardAreaSquareFeet,omitempty"`
	IrrigationAmount           int           `json:"irrigationAmount,omitempty"`
	DepthOfWater               float64       `json:"depthOfWater,omitempty"`
	Runtime                    int           `json:"runtime,omitempty"`
}

type CustomNozzle struct {
	Name          string  `json:"name"`
	ImageURL      string  `json:"imageUrl,omitempty"`
	Category      string  `json:"category,omitempty"`
	InchesPerHour float64 `json:"inchesPerHour,omitempty"`
}

type ScheduleRule struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ExternalName string `json:"externalName,omitempty"`
	Enabled      bool   `json:"enabled"`
}

// DeviceEvent is a single entry in a device's event history, as returned by /device/<id>/event.
//
// The order of the fields determines the column order when writing events as CSV.
type DeviceEvent struct {
	ID        string `json:"id"`
	DeviceID  string `json:"deviceId"`
	Category  string `json:"category,omitempty"`
	Type      string `json:"type,omitempty"`
	SubType   string `json:"subType,omitempty"`
	EventDate int64  `json:"eventDate"`
	Summary   string `json:"summary"`
	Hidden    bool   `json:"hidden"`
	Topic     string `json:"topic,omitempty"`
}

// Timestamp returns the EventDate as a time.Time
func (e DeviceEvent) Timestamp() time.Time {
	return time.UnixMilli(e.EventDate)
}

func (e DeviceEvent) CSVHeader() []string {
	return []string{"id", "deviceId", "category", "type", "subType", "eventDate", "summary", "hidden", "topic"}
}

func (e DeviceEvent) CSVRecord() []string {
	return []string{
		e.ID,
		e.DeviceID,
		e.Category,
		e.Type,
		e.SubType,
		strconv.FormatInt(e.EventDate, 10),
		e.Summary,
		strconv.FormatBool(e.Hidden),
		e.Topic,
	}
}
