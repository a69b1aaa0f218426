/*
Package operation implements the reduction pipeline: it walks a source tree and
decides, file by file, whether to transform, copy or skip.

	+-------------+     +-------------+     +-------------+
	|    walk     | --> |   Policy    | --> |   status    |
	|  (entries)  |     | (per file)  |     |  (results)  |
	+-------------+     +------+------+     +-------------+
	                           |
	                    +------+------+
	                    |  Resolver   |
	                    | (out paths) |
	                    +-------------+

🎯 Purpose:
- Resolve where each output goes (mirrored tree or in place)
- Gate files on the size threshold and exclude patterns
- Contain per-file failures so one bad image never aborts a run

🔄 Flow:
1. PrepareRoot checks or creates the destination
2. walk.Walk yields entries one at a time
3. Policy.Process transforms, copies or skips each entry
4. Results go to the status manager and the console

⚡ Fatal errors:
Only a missing source, an unusable destination or an invalid config stop a
run. Everything else becomes a per-file result.

🔍 Example:

	op := operation.NewReduceOperation(operation.Options{
		Config:    cfg,
		StatusMgr: status.NewManager(&logger, nil),
	})
	err := operation.NewRunner(&logger).Run(ctx, op)
*/
package operation
