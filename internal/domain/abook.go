package domain

import "strings"

// ContactableType discriminates the concrete kind of an address book entry.
type ContactableType int

const (
	TypePerson ContactableType = iota
	TypeOrganisation
	TypeMember
)

func (t ContactableType) String() string {
	switch t {
	case TypePerson:
		return "person"
	case TypeOrganisation:
		return "organisation"
	case TypeMember:
		return "member"
	default:
		return "unknown"
	}
}

// Contactable is the tagged union over Person, Organisation and Member.
// Exactly one of the three pointers matching Type is set.
type Contactable struct {
	Record
	Type      ContactableType `json:"type"`
	BasicName string          `json:"basicName"`

	Person       *Person       `json:"person,omitempty"`
	Organisation *Organisation `json:"organisation,omitempty"`
	Member       *Member       `json:"member,omitempty"`
}

// DisplayName returns the concrete entry's name per its discriminant,
// falling back to the cached basic name.
func (c Contactable) DisplayName() string {
	switch c.Type {
	case TypePerson:
		if c.Person != nil {
			return c.Person.FullName()
		}
	case TypeOrganisation:
		if c.Organisation != nil {
			return c.Organisation.Name
		}
	case TypeMember:
		if c.Member != nil && c.Member.Person != nil {
			return c.Member.Person.FullName()
		}
	}
	return c.BasicName
}

// Title is a person's salutation.
type Title int

const (
	TitleNone Title = iota - 1
	TitleMr
	TitleMiss
	TitleMs
	TitleMrs
	TitleDr
	TitleProf
	TitleSir
	TitleLord
	TitleLady
	TitleRev
)

var titleNames = [...]string{"Mr", "Miss", "Ms", "Mrs", "Dr", "Prof", "Sir", "Lord", "Lady", "Rev"}

func (t Title) String() string {
	if t < 0 || int(t) >= len(titleNames) {
		return ""
	}
	return titleNames[t]
}

// Person is an individual address book entry.
type Person struct {
	Record
	ContactableID uint   `json:"contactableId"`
	Title         Title  `json:"title"`
	FirstName     string `json:"firstName"`
	MiddleName    string `json:"middleName,omitempty"`
	LastName      string `json:"lastName"`
	Nickname      string `json:"nickname,omitempty"`

	// AlterIDs are people who can be contacted instead.
	AlterIDs []uint `json:"alterIds,omitempty"`
}

func (p Person) FullName() string {
	name := p.FirstName
	if p.MiddleName != "" {
		name += " " + p.MiddleName
	}
	return name + " " + p.LastName
}

func (p Person) NameWithNick() string {
	name := p.FullName()
	if p.Nickname != "" {
		name += " (" + p.Nickname + ")"
	}
	return name
}

// Organisation is a company or society address book entry.
type Organisation struct {
	Record
	ContactableID uint   `json:"contactableId"`
	Name          string `json:"name"`
	Nickname      string `json:"nickname,omitempty"`
}

func (o Organisation) NameWithNick() string {
	name := o.Name
	if o.Nickname != "" {
		name += " (" + o.Nickname + ")"
	}
	return name
}

// Member joins one person to one organisation. The pair is unique and the
// member's status is derived from both sides, never set directly.
type Member struct {
	Record
	ContactableID  uint   `json:"contactableId"`
	OrganisationID uint   `json:"organisationId"`
	PersonID       uint   `json:"personId"`
	Title          string `json:"title,omitempty"` // role within the organisation

	Person       *Person       `json:"person,omitempty"`
	Organisation *Organisation `json:"organisation,omitempty"`
}

// Contact holds postal and electronic details for one contactable.
type Contact struct {
	Record
	ContactableID uint   `json:"contactableId"`
	Line1         string `json:"line1,omitempty"`
	Line2         string `json:"line2,omitempty"`
	Line3         string `json:"line3,omitempty"`
	Town          string `json:"town,omitempty"`
	Postcode      string `json:"postcode,omitempty"`
	Country       string `json:"country,omitempty"`
	Email         string `json:"email,omitempty"`
	Website       string `json:"website,omitempty"`
	Telephone     string `json:"telephone,omitempty"`
	Mobile        string `json:"mobile,omitempty"`
	Fax           string `json:"fax,omitempty"`
	AddrOrder     int    `json:"addrOrder,omitempty"`
	AddrSuborder  int    `json:"addrSuborder,omitempty"`
}

// Address joins the populated address fields with sep. Lines 2 and 3 are
// only included while their predecessors are set.
func (c Contact) Address(sep string) string {
	var addr []string
	if c.Line1 != "" {
		addr = append(addr, c.Line1)
		if c.Line2 != "" {
			addr = append(addr, c.Line2)
			if c.Line3 != "" {
				addr = append(addr, c.Line3)
			}
		}
	}
	if c.Town != "" {
		addr = append(addr, c.Town)
	}
	if c.Postcode != "" {
		addr = append(addr, c.Postcode)
	}
	return strings.Join(addr, sep)
}

// Summary returns the address or, failing that, the first populated
// electronic detail.
func (c Contact) Summary() string {
	if s := c.Address(", "); s != "" {
		return s
	}
	switch {
	case c.Email != "":
		return c.Email
	case c.Website != "":
		return c.Website
	case c.Telephone != "":
		return c.Telephone
	case c.Mobile != "":
		return c.Mobile
	}
	return "[empty contact]"
}
