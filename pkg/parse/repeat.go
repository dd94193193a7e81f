package parse

// Rep applies p zero or more times. Repetition is iterative and stops when p
// fails or succeeds without consuming input.
func Rep[T any](p Parser[T]) Parser[[]T] {
	return RepMinMax(p, 0, -1)
}

// Rep1 applies p one or more times.
func Rep1[T any](p Parser[T]) Parser[[]T] {
	return RepMinMax(p, 1, -1)
}

// RepMin applies p at least minCount times.
func RepMin[T any](p Parser[T], minCount int) Parser[[]T] {
	return RepMinMax(p, minCount, -1)
}

// RepMinMax applies p between minCount and maxCount times.
// A negative maxCount means no upper bound.
func RepMinMax[T any](p Parser[T], minCount, maxCount int) Parser[[]T] {
	return func(ctx Context) Result[[]T] {
		var values []T
		cur := ctx
		for maxCount < 0 || len(values) < maxCount {
			res := p(cur)
			if !res.OK() {
				if len(values) < minCount {
					return Failure[[]T](res.msg, res.next)
				}
				break
			}
			values = append(values, res.value)
			if res.next.Offset() == cur.Offset() {
				cur = res.next
				break
			}
			cur = res.next
		}
		if len(values) < minCount {
			return Failure[[]T](Messagef("expected at least %d occurrences, found %d", minCount, len(values)), cur)
		}
		return Success(values, cur)
	}
}

// RepSep applies p zero or more times, separated by sep.
func RepSep[T, S any](p Parser[T], sep Parser[S]) Parser[[]T] {
	return func(ctx Context) Result[[]T] {
		first := p(ctx)
		if !first.OK() {
			return Success[[]T](nil, ctx)
		}
		values := []T{first.value}
		cur := first.next
		for {
			rs := sep(cur)
			if !rs.OK() {
				break
			}
			rp := p(rs.next)
			if !rp.OK() || rp.next.Offset() == cur.Offset() {
				break
			}
			values = append(values, rp.value)
			cur = rp.next
		}
		return Success(values, cur)
	}
}

// RepUntil applies p until end succeeds, consuming end. It fails if input is
// exhausted or p fails before end matches.
func RepUntil[T, E any](p Parser[T], end Parser[E]) Parser[[]T] {
	return func(ctx Context) Result[[]T] {
		var values []T
		cur := ctx
		for {
			if re := end(cur); re.OK() {
				return Success(values, re.next)
			}
			res := p(cur)
			if !res.OK() {
				return Failure[[]T](res.msg, res.next)
			}
			if res.next.Offset() == cur.Offset() {
				return Failure[[]T](Messagef("repetition made no progress"), cur)
			}
			values = append(values, res.value)
			cur = res.next
		}
	}
}
