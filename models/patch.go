package models

// NamePatch carries partial updates to a person's naming fields. A nil slot
// leaves the field untouched. The derived full name is recomputed whenever
// first or last name changes.
type NamePatch struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Nickname  *string `json:"nickname"`
	Honorific *string `json:"honorific"`
}

// ProfilePatch carries partial updates to a person's profile fields. A nil
// slot leaves the field untouched; there is no way to clear a field through
// this patch, only to overwrite it.
type ProfilePatch struct {
	Bio                  *string `json:"bio"`
	Major                *string `json:"major"`
	Age                  *string `json:"age"`
	Ethnicity            *string `json:"ethnicity"`
	Hometown             *string `json:"hometown"`
	ContactHandle        *string `json:"contact_handle"`
	Phone                *string `json:"phone"`
	Emails               *string `json:"emails"`
	Standing             *string `json:"standing"`
	ShirtSize            *string `json:"shirt_size"`
	Birthday             *string `json:"birthday"`
	LineageNote          *string `json:"lineage_note"`
	PersonalityCode      *string `json:"personality_code"`
	LoveLanguage         *string `json:"love_language"`
	FascinationAdvantage *string `json:"fascination_advantage"`
	Notes                *string `json:"notes"`
	Interest             *string `json:"interest"`
}

// FindCriteria is a partial lookup filter for people. Matching is OR across
// the provided slots: any single criterion matching is enough.
type FindCriteria struct {
	SequenceNumber *int64  `json:"sequence_number"`
	FirstName      *string `json:"first_name"`
	LastName       *string `json:"last_name"`
	Nickname       *string `json:"nickname"`
}

// IsEmpty reports whether no criteria were provided.
func (c FindCriteria) IsEmpty() bool {
	return c.SequenceNumber == nil && c.FirstName == nil && c.LastName == nil && c.Nickname == nil
}
