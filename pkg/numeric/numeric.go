// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package numeric

import (
	"context"

	"github.com/matrixorigin/matrixsort/pkg/common/moerr"
)

// maxFactorial is the largest n whose factorial fits in a uint64.
const maxFactorial = 20

// IsPrime tests n by trial division with odd divisors up to sqrt(n).
func IsPrime(n int64) bool {
	if n <= 1 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	for i := int64(3); i <= n/i; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

func Factorial(ctx context.Context, n int64) (uint64, error) {
	if n < 0 {
		return 0, moerr.NewInvalidArg(ctx, "factorial", n)
	}
	if n > maxFactorial {
		return 0, moerr.NewOutOfRange(ctx, "uint64", "factorial of %d", n)
	}
	result := uint64(1)
	for i := uint64(2); i <= uint64(n); i++ {
		result *= i
	}
	return result, nil
}
