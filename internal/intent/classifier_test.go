package intent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/intent"
	"github.com/PorkerKing/pokerpal-final-app-sub000/internal/operation"
)

func TestClassify_CreateMemberChinese(t *testing.T) {
	res, ok := intent.Classify("创建会员 姓名：张三，邮箱：z@x.com，角色：MEMBER")
	require.True(t, ok)

	assert.Equal(t, operation.OpCreateMember, res.Operation)
	assert.Equal(t, "张三", res.Params["name"])
	assert.Equal(t, "z@x.com", res.Params["email"])
	assert.Equal(t, "MEMBER", res.Params["role"])
}

func TestClassify_CreateMemberEnglish(t *testing.T) {
	res, ok := intent.Classify("create member name: Alice, email: alice@club.io, role: vip")
	require.True(t, ok)

	assert.Equal(t, operation.OpCreateMember, res.Operation)
	assert.Equal(t, "Alice", res.Params["name"])
	assert.Equal(t, "alice@club.io", res.Params["email"])
	assert.Equal(t, "VIP", res.Params["role"])
}

func TestClassify_DepositLabelled(t *testing.T) {
	res, ok := intent.Classify("给会员充值 邮箱：z@x.com 金额：500")
	require.True(t, ok)

	assert.Equal(t, operation.OpDeposit, res.Operation)
	assert.Equal(t, "z@x.com", res.Params["email"])
	assert.Equal(t, "500", res.Params["amount"])
}

func TestClassify_DepositPositionalFallback(t *testing.T) {
	res, ok := intent.Classify("top up bob@club.io 250.50")
	require.True(t, ok)

	assert.Equal(t, operation.OpDeposit, res.Operation)
	assert.Equal(t, "bob@club.io", res.Params["email"])
	assert.Equal(t, "250.50", res.Params["amount"])
}

func TestClassify_Withdraw(t *testing.T) {
	res, ok := intent.Classify("withdraw 100 for bob@club.io")
	require.True(t, ok)

	assert.Equal(t, operation.OpWithdraw, res.Operation)
	assert.Equal(t, "100", res.Params["amount"])
}

func TestClassify_FirstMatchWins(t *testing.T) {
	tests := []struct {
		name string
		text string
		want operation.ID
	}{
		// "积分余额" contains 余额; the points rule is earlier and wins.
		{"points query beats balance query", "查一下我的积分余额", operation.OpGetPoints},
		// "取消报名" contains 报名; the cancel rule is earlier and wins.
		{"cancel registration beats register", "我要取消报名", operation.OpCancelRegistration},
		{"plain register still matches", "我要报名 比赛：周五主赛", operation.OpRegisterTournament},
		{"redeem beats award", "帮他扣积分 50", operation.OpRedeemPoints},
		{"balance alone is a balance query", "查询余额", operation.OpGetBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, ok := intent.Classify(tt.text)
			require.True(t, ok, "expected %q to classify", tt.text)
			assert.Equal(t, tt.want, res.Operation)
		})
	}
}

func TestClassify_TournamentParam(t *testing.T) {
	res, ok := intent.Classify("报名 比赛：friday-main")
	require.True(t, ok)

	assert.Equal(t, operation.OpRegisterTournament, res.Operation)
	assert.Equal(t, "friday-main", res.Params["tournament"])
}

func TestClassify_Unrecognized(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"今天天气怎么样",
		"tell me a joke",
	} {
		_, ok := intent.Classify(text)
		assert.False(t, ok, "expected %q to be unrecognized", text)
	}
}

func TestClassify_NoSideEffectsOnParams(t *testing.T) {
	res, ok := intent.Classify("查询余额")
	require.True(t, ok)
	// Queries produce an empty (non-nil) param map.
	assert.NotNil(t, res.Params)
	assert.Empty(t, res.Params)
}
