// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package minibus_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/minibus/pkg/minibus"
)

type OrderPlaced struct{ ID string }
type OrderCancelled struct{ ID string }

func ExampleSyncBus() {
	bus := minibus.NewSyncBus(minibus.WithLogger(zerolog.Nop()))

	placed := minibus.NewTypedHandler(func(_ context.Context, evt OrderPlaced) error {
		fmt.Println("placed", evt.ID)
		return nil
	})
	audit := minibus.NewPredicateHandler(
		minibus.Accepts(minibus.TypeOf[OrderPlaced](), minibus.TypeOf[OrderCancelled]()),
		func(_ context.Context, evt minibus.Event) error {
			fmt.Printf("audit %T\n", evt)
			return nil
		},
	)
	_ = bus.Subscribe(placed)
	_ = bus.Subscribe(audit)
	defer bus.Unsubscribe(placed)
	defer bus.Unsubscribe(audit)

	bus.Publish(context.Background(), OrderPlaced{ID: "o-1"})
	bus.Publish(context.Background(), OrderCancelled{ID: "o-1"})
	// Output:
	// placed o-1
	// audit minibus_test.OrderPlaced
	// audit minibus_test.OrderCancelled
}

func ExampleOnFailure() {
	bus := minibus.NewSyncBus(minibus.WithLogger(zerolog.Nop()))
	h := minibus.NewTypedHandler(func(context.Context, OrderPlaced) error {
		return errors.New("out of stock")
	})
	_ = bus.Subscribe(h)
	defer bus.Unsubscribe(h)

	bus.Publish(context.Background(), OrderPlaced{ID: "o-2"},
		minibus.OnSuccess(func(minibus.Event, minibus.Handler) { fmt.Println("ok") }),
		minibus.OnFailure(func(evt minibus.Event, _ minibus.Handler, err error) {
			fmt.Printf("%s failed: %v\n", evt.(OrderPlaced).ID, err)
		}),
	)
	// Output:
	// o-2 failed: out of stock
}

func ExampleAsyncBus() {
	bus := minibus.NewAsyncBus(minibus.WithLogger(zerolog.Nop()), minibus.WithMaxWorkers(4))
	done := make(chan string, 1)
	h := minibus.NewTypedHandler(func(_ context.Context, evt OrderPlaced) error {
		done <- evt.ID
		return nil
	})
	_ = bus.Subscribe(h)
	defer bus.Unsubscribe(h)

	bus.Publish(context.Background(), OrderPlaced{ID: "o-3"})
	fmt.Println("handled", <-done)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	fmt.Println(bus.Close(ctx))
	// Output:
	// handled o-3
	// <nil>
}
