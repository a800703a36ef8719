package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMilestones(t *testing.T) {
	testCases := []struct {
		status   OrderStatus
		expected TrackingMilestones
	}{
		{
			OrderStatusPending,
			TrackingMilestones{Placed: true},
		},
		{
			OrderStatusProcessing,
			TrackingMilestones{Placed: true, QualityCheck: true},
		},
		{
			OrderStatusPackaging,
			TrackingMilestones{Placed: true, QualityCheck: true, Packed: true},
		},
		{
			OrderStatusShipped,
			TrackingMilestones{Placed: true, QualityCheck: true, Packed: true, HandedToCourier: true},
		},
		{
			OrderStatusOnTheWay,
			TrackingMilestones{Placed: true, QualityCheck: true, Packed: true, HandedToCourier: true},
		},
		{
			OrderStatusDelivered,
			TrackingMilestones{Placed: true, QualityCheck: true, Packed: true, HandedToCourier: true, Delivered: true},
		},
		{
			// Приостановленный заказ прошел проверку, но не собран
			OrderStatusHold,
			TrackingMilestones{Placed: true, QualityCheck: true},
		},
		{
			// Отмененный заказ показывает только факт оформления
			OrderStatusCancelled,
			TrackingMilestones{Placed: true},
		},
	}

	for _, tc := range testCases {
		t.Run(string(tc.status), func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.status.Milestones())
		})
	}
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.True(t, OrderStatusCancelled.IsTerminal())
	assert.False(t, OrderStatusPending.IsTerminal())
	assert.False(t, OrderStatusHold.IsTerminal())
	assert.False(t, OrderStatusOnTheWay.IsTerminal())
}

func TestIsValid(t *testing.T) {
	assert.True(t, OrderStatusProcessing.IsValid())
	assert.True(t, OrderStatusOnTheWay.IsValid())
	assert.False(t, OrderStatus("returned").IsValid())
	assert.False(t, OrderStatus("").IsValid())
}
