package oppath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name      string
		reference string
		context   string
		want      string
		expectErr bool
	}{
		{name: "absolute passes through", reference: "/x/y", context: "/a/b", want: "/x/y"},
		{name: "absolute is normalized", reference: "/x/./y/..", context: "/a/b", want: "/x"},
		{name: "bare name resolves as sibling", reference: "num2", context: "/container/num1", want: "/container/num2"},
		{name: "dot-slash resolves as sibling", reference: "./num2", context: "/container/num1", want: "/container/num2"},
		{name: "dot-dot climbs out of container", reference: "../other", context: "/container/num1", want: "/other"},
		{name: "top-level context", reference: "peer", context: "/op", want: "/peer"},
		{name: "empty context treated as root", reference: "peer", context: "", want: "/peer"},
		{name: "error - empty reference", reference: "", context: "/a", expectErr: true},
		{name: "error - control character", reference: "bad\x00name", context: "/a/b", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.reference, tc.context)
			if tc.expectErr {
				require.ErrorIs(t, err, ErrUnresolvable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

// Every defined result of Resolve must be a valid absolute path, for any
// combination of reference and context.
func TestResolve_DefinedResultsAreAbsolute(t *testing.T) {
	references := []string{"/abs", "name", "./name", "../name", "a/b/c", "../../../deep", "/x//y"}
	contexts := []string{"/", "/op", "/container/op", "", "no-slash/op"}

	for _, ref := range references {
		for _, ctx := range contexts {
			got, err := Resolve(ref, ctx)
			if err != nil {
				continue
			}
			assert.True(t, IsAbs(got), "Resolve(%q, %q) = %q is not absolute", ref, ctx, got)
		}
	}
}
