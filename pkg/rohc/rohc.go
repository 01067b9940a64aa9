// Package rohc is the public facade of the RFC 3095 header compressor
// core. It re-exports the compressor API and provides the version /
// status helpers of the classic library surface.
package rohc

import (
	"errors"

	"firestige.xyz/rohc/internal/config"
	"firestige.xyz/rohc/internal/core"
	"firestige.xyz/rohc/internal/log"
	"firestige.xyz/rohc/internal/rohc/comp"
)

// version of the compressor core.
const version = "1.0.0"

// Version returns the library version string.
func Version() string { return version }

// Re-exported compressor types.
type (
	Compressor = comp.Compressor
	CIDType    = comp.CIDType
	ProfileID  = comp.ProfileID
	PacketType = comp.PacketType
	PacketInfo = comp.PacketInfo
	State      = comp.State
	Mode       = comp.Mode
	Stats      = comp.Stats
	RandFunc   = comp.RandFunc
)

const (
	SmallCID = comp.SmallCID
	LargeCID = comp.LargeCID

	ProfileUncompressed = comp.ProfileUncompressed
	ProfileUDP          = comp.ProfileUDP
	ProfileIP           = comp.ProfileIP

	ModeU = comp.ModeU
	ModeO = comp.ModeO
	ModeR = comp.ModeR
)

// Re-exported sentinel errors.
var (
	ErrBufferTooSmall  = core.ErrBufferTooSmall
	ErrUnsupported     = core.ErrUnsupported
	ErrNoMemory        = core.ErrNoMemory
	ErrInvalidCID      = core.ErrInvalidCID
	ErrProfileDisabled = core.ErrProfileDisabled
	ErrInvalidFeedback = core.ErrInvalidFeedback
)

// New creates a compressor instance. maxCID must respect the CID type
// bound (15 small, 16383 large); mrru and jamUse are carried for link
// negotiation only.
func New(cidType CIDType, maxCID uint16, mrru uint16, jamUse bool) (*Compressor, error) {
	return comp.New(cidType, maxCID, mrru, jamUse)
}

// NewFromConfigFile builds a compressor from a YAML configuration file,
// activating the profiles it lists and initializing the logger.
func NewFromConfigFile(path string) (*Compressor, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	log.Init(cfg.Logger)

	cidType := SmallCID
	if cfg.CIDType == "large" {
		cidType = LargeCID
	}
	c, err := comp.New(cidType, cfg.MaxCID, cfg.MRRU, false)
	if err != nil {
		return nil, err
	}
	c.SetWLSBWindowWidth(cfg.WLSBWidth)
	c.SetOARepetitions(cfg.OARepetitions)
	c.SetPeriodicRefreshes(cfg.IRTimeout, cfg.FOTimeout)

	for _, name := range cfg.Profiles {
		var id ProfileID
		switch name {
		case config.ProfileNameUncompressed:
			id = ProfileUncompressed
		case config.ProfileNameUDP:
			id = ProfileUDP
		case config.ProfileNameIP:
			id = ProfileIP
		}
		if err := c.ActivateProfile(id); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ModeDescription returns the textual description of an operation mode.
func ModeDescription(m Mode) string { return comp.ModeDescription(m) }

// StatusString maps an error returned by the compressor to its RFC-style
// status name.
func StatusString(err error) string {
	switch {
	case err == nil:
		return "OK"
	case errors.Is(err, core.ErrBufferTooSmall):
		return "BufferTooSmall"
	case errors.Is(err, core.ErrUnsupported):
		return "Unsupported"
	case errors.Is(err, core.ErrNoMemory):
		return "NoMemory"
	case errors.Is(err, core.ErrInvalidCID):
		return "InvalidCid"
	case errors.Is(err, core.ErrProfileDisabled):
		return "ProfileDisabled"
	case errors.Is(err, core.ErrInvalidFeedback):
		return "InvalidFeedback"
	default:
		return "Error"
	}
}
