package member

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/jpashop/internal/domain/member"
	"github.com/xiebiao/jpashop/internal/domain/shared"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/jpashop/internal/infrastructure/persistence/mysql/mysqltest"
	apperrors "github.com/xiebiao/jpashop/pkg/errors"
)

func newMemberService(t *testing.T) member.Service {
	t.Helper()
	db := mysqltest.NewDB(t)
	return member.NewService(mysql.NewMemberRepository(db), mysql.NewTxManager(db))
}

func TestJoinMember(t *testing.T) {
	svc := newMemberService(t)
	join := NewJoinMemberUseCase(svc)
	ctx := context.Background()

	resp, err := join.Execute(ctx, JoinMemberRequest{Name: "kim", Address: shared.NewAddress("Seoul", "1", "1111")})
	require.NoError(t, err)

	found, err := svc.FindOne(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "kim", found.Name)
	assert.Equal(t, "Seoul", found.Address.City)

	t.Run("重名", func(t *testing.T) {
		_, err := join.Execute(ctx, JoinMemberRequest{Name: "kim"})
		assert.ErrorIs(t, err, member.ErrDuplicateMember)
		assert.Equal(t, 409, apperrors.HTTPStatus(apperrors.GetAppError(err).Code))
	})

	t.Run("空名称", func(t *testing.T) {
		_, err := join.Execute(ctx, JoinMemberRequest{Name: " "})
		assert.ErrorIs(t, err, member.ErrEmptyName)
	})
}

func TestListMembers(t *testing.T) {
	svc := newMemberService(t)
	join := NewJoinMemberUseCase(svc)
	list := NewListMembersUseCase(svc)
	ctx := context.Background()

	for _, name := range []string{"kim", "lee"} {
		_, err := join.Execute(ctx, JoinMemberRequest{Name: name})
		require.NoError(t, err)
	}

	dtos, err := list.Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, []MemberDto{{Name: "kim"}, {Name: "lee"}}, dtos)

	entities, err := list.ExecuteEntities(ctx)
	require.NoError(t, err)
	require.Len(t, entities, 2)
	assert.NotZero(t, entities[0].ID)
}

func TestUpdateMember(t *testing.T) {
	svc := newMemberService(t)
	ctx := context.Background()

	joined, err := NewJoinMemberUseCase(svc).Execute(ctx, JoinMemberRequest{Name: "kim"})
	require.NoError(t, err)

	update := NewUpdateMemberUseCase(svc)
	resp, err := update.Execute(ctx, joined.ID, "park")
	require.NoError(t, err)
	assert.Equal(t, &UpdateMemberResponse{ID: joined.ID, Name: "park"}, resp)

	_, err = update.Execute(ctx, 9999, "park")
	assert.ErrorIs(t, err, member.ErrMemberNotFound)

	_, err = update.Execute(ctx, joined.ID, "")
	assert.ErrorIs(t, err, member.ErrEmptyName)
}
