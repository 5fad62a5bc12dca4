// SPDX-License-Identifier: MIT

package health

import (
	"context"
	"fmt"
	"time"
)

// SubscriberCounter reports how many handlers a bus currently holds.
type SubscriberCounter interface {
	Name() string
	Subscribers() int
}

// SubscribersChecker is unhealthy while a bus has no subscribed handlers.
type SubscribersChecker struct {
	bus SubscriberCounter
}

// NewSubscribersChecker creates a checker for bus.
func NewSubscribersChecker(bus SubscriberCounter) *SubscribersChecker {
	return &SubscribersChecker{bus: bus}
}

func (c *SubscribersChecker) Name() string {
	return "bus_subscribers"
}

func (c *SubscribersChecker) Check(context.Context) CheckResult {
	n := c.bus.Subscribers()
	if n == 0 {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: fmt.Sprintf("bus %q has no subscribers", c.bus.Name()),
		}
	}
	return CheckResult{
		Status:  StatusHealthy,
		Message: fmt.Sprintf("%d subscribers", n),
	}
}

// ProgressChecker reports whether events keep flowing.
type ProgressChecker struct {
	last   func() time.Time
	maxAge time.Duration
	now    func() time.Time
}

// NewProgressChecker creates a checker that is degraded when last reports a
// time older than maxAge, and unhealthy before the first event.
func NewProgressChecker(last func() time.Time, maxAge time.Duration) *ProgressChecker {
	return &ProgressChecker{last: last, maxAge: maxAge, now: time.Now}
}

func (c *ProgressChecker) Name() string {
	return "publish_progress"
}

func (c *ProgressChecker) Check(context.Context) CheckResult {
	last := c.last()
	if last.IsZero() {
		return CheckResult{
			Status:  StatusUnhealthy,
			Message: "no event published yet",
		}
	}
	if age := c.now().Sub(last); age > c.maxAge {
		return CheckResult{
			Status:  StatusDegraded,
			Message: fmt.Sprintf("last event published %s ago", age.Round(time.Millisecond)),
		}
	}
	return CheckResult{
		Status:  StatusHealthy,
		Message: "events flowing",
	}
}
