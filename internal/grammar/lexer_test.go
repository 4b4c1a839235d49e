package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_State_AddTransition_keepsOrder(t *testing.T) {
	s := &State{ID: 1}
	s.AddTransition(&Transition{Kind: TransWildcard, Trigger: NewWildcard()})
	s.AddTransition(&Transition{Kind: TransClass, Trigger: NewClass([]ClassRange{{Lo: 'a', Hi: 'z'}}, false)})
	s.AddTransition(&Transition{Kind: TransPrimitive, Trigger: NewLiteral('a')})
	s.AddTransition(&Transition{Kind: TransPrimitive, Trigger: NewEscapeClass("d")})

	var kinds []TransitionKind
	for _, tr := range s.Out {
		kinds = append(kinds, tr.Kind)
	}
	// small literal ranges first, then large escape classes, then classes,
	// then wildcards last (§5).
	assert.Equal(t, []TransitionKind{TransPrimitive, TransPrimitive, TransClass, TransWildcard}, kinds)
	assert.False(t, s.Out[0].isLargeEscape())
	assert.True(t, s.Out[1].isLargeEscape())
}

func Test_State_FindOn(t *testing.T) {
	s := &State{ID: 1}
	lit := NewLiteral('x')
	s.AddTransition(&Transition{Kind: TransPrimitive, Trigger: lit, Next: 2})

	found := s.FindOn(NewLiteral('x'))
	assert.NotNil(t, found)
	assert.Equal(t, StateID(2), found.Next)

	assert.Nil(t, s.FindOn(NewLiteral('y')))
}

func Test_NilState_isZero(t *testing.T) {
	assert.Equal(t, StateID(0), NilState)
}
