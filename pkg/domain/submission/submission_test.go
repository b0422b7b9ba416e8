package submission

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/whopu/challenge/pkg/domain"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending Review", "Reviewed", "Needs Revision", "Challenge Complete"} {
		st, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), st)
	}

	_, err := ParseStatus("Approved")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestSubmission_Validate(t *testing.T) {
	s := &Submission{ID: "sub_1_abc", Day: 3, Status: StatusPendingReview}
	assert.NoError(t, s.Validate())

	s.Day = 6
	assert.ErrorIs(t, s.Validate(), domain.ErrInvalidDay)

	s.Day = 3
	s.Status = "Done"
	assert.ErrorIs(t, s.Validate(), domain.ErrInvalidStatus)

	s.ID = ""
	assert.Error(t, s.Validate())
}

func TestSubmission_IsCompletion(t *testing.T) {
	assert.True(t, (&Submission{Kind: KindProfileLink, Day: 5}).IsCompletion())
	assert.True(t, (&Submission{Kind: KindProfileLink, Day: 3}).IsCompletion())
	assert.False(t, (&Submission{Kind: KindStoreLink, Day: 5}).IsCompletion())
	assert.False(t, (&Submission{Kind: KindStoreLink, Day: 4}).IsCompletion())
}

func TestDetails_ValueScan(t *testing.T) {
	in := Details{
		WorksheetRows: []WorksheetRow{{CantBecause: "no time", Reframed: true, NeverEasierBecause: "AI tools"}},
		Market:        "fitness coaches",
	}
	v, err := in.Value()
	require.NoError(t, err)

	var out Details
	require.NoError(t, out.Scan(v))
	assert.Equal(t, in, out)
}

func TestIDGenerator(t *testing.T) {
	fixed := time.UnixMilli(1737925200000)
	gen := NewIDGenerator(func() time.Time { return fixed })

	a, b := gen(), gen()
	assert.Regexp(t, regexp.MustCompile(`^sub_1737925200000_[0-9a-f]{6}$`), a)
	assert.NotEqual(t, a, b)
}
