/*
Package transfer implements the transfer lifecycle engine.

A transfer is created in the pending state and settled asynchronously:
the creation call persists the record, submits a run to the worker
pool, and returns. The run walks a single forward path, emitting a
notification to both parties at every step:

	(pending, pending, pending)
	    -> settle delay
	(pending, sent, pending)        sender debited
	    -> clearing delay, outcome draw with probability SuccessRate
	(completed, sent, received)     success
	(failed, sent, failed)          drawn failure, refund notice follows
	(failed, *, failed)             unexpected error, forced terminal

All three terminal shapes are absorbing; the repository guards every
status write against terminal records, so a finished transfer is never
mutated again.

Usage:

	pool := transfer.NewPool(cfg.Workers, cfg.QueueSize)
	engine := transfer.NewEngine(transfers, users, notifier, nil, nil, metrics, cfg)
	svc := transfer.NewService(transfers, users, engine, pool, metrics)

	t, err := svc.CreateTransfer(ctx, senderID, receiverID, 50.00)

The Clock and Rand dependencies are injectable so tests can drive the
delays and the outcome draw deterministically.
*/
package transfer
