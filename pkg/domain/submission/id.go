package submission

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces submission ids of the form sub_<unix millis>_<suffix>.
type IDGenerator func() string

func NewIDGenerator(now func() time.Time) IDGenerator {
	if now == nil {
		now = time.Now
	}
	return func() string {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
		return fmt.Sprintf("sub_%d_%s", now().UnixMilli(), suffix)
	}
}
