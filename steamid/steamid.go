package steamid

import (
	"errors"
	"strconv"

	"github.com/rotisserie/eris"
)

type Universe uint
type Type uint
type Instance uint

const (
	UniverseInvalid Universe = iota
	UniversePublic
	UniverseBeta
	UniverseInternal
	UniverseDev
)

const (
	TypeInvalid Type = iota
	TypeIndividual
	TypeMultiseat
	TypeGameServer
	TypeAnonGameServer
	TypePending
	TypeContentServer
	TypeClan
	TypeChat
	TypeP2pSuperSeeder
	TypeAnonUser
)

const (
	InstanceAll Instance = iota
	InstanceDesktop
	InstanceConsole
	InstanceWeb
)

const (
	accountIDMask       uint64 = 0xFFFFFFFF
	accountInstanceMask uint64 = 0x000FFFFF
	accountTypeMask     uint64 = 0xF
)

var ErrorEmpty = errors.New("can't parse empty string as SteamID64")

// SteamID is a decomposed 64-bit steam identifier. String returns the
// original decimal form, which is what community endpoints expect.
type SteamID struct {
	original  string
	universe  Universe
	idType    Type
	instance  Instance
	accountID uint32
}

func ParseSteamID64(s string) (SteamID, error) {
	steamID := SteamID{
		original: s,
		universe: UniverseInvalid,
		idType:   TypeInvalid,
		instance: InstanceAll,
	}

	if s == "" {
		return steamID, ErrorEmpty
	}

	parsedID, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return steamID, eris.Wrapf(err, "can't parse steamID into int64")
	}

	steamID.accountID = uint32(parsedID & accountIDMask)
	steamID.instance = Instance((parsedID >> 32) & accountInstanceMask)
	steamID.idType = Type((parsedID >> 52) & accountTypeMask)
	steamID.universe = Universe(parsedID >> 56)

	return steamID, nil
}

func (id SteamID) String() string {
	return id.original
}

func (id SteamID) IsValid() bool {
	switch {
	case id.idType <= TypeInvalid || id.idType > TypeAnonUser:
		return false
	case id.universe <= UniverseInvalid || id.universe > UniverseDev:
		return false
	case id.idType == TypeIndividual && (id.accountID == 0 || id.instance > InstanceWeb):
		return false
	}

	return true
}

func (id SteamID) IsValidIndividual() bool {
	return id.universe == UniversePublic &&
		id.idType == TypeIndividual &&
		id.instance == InstanceDesktop &&
		id.accountID != 0
}

func (id SteamID) AccountID() uint32 {
	return id.accountID
}
