/*
 * Copyright (c) 2018 XLAB d.o.o
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package abe_test

import (
	"fmt"

	"github.com/xlab-si/yct14-abe/abe"
)

// This mirrors the setup -> encrypt -> keygen -> decrypt round trip shown
// in the original implementation's own doc comment.
func Example() {
	scheme := abe.NewYct14()

	pk, msk, err := scheme.Setup([]string{"sun", "rain", "wind"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ct, err := scheme.Encrypt(pk, []string{"sun", "wind"}, []byte("a message only the weather station should read"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	sk, err := scheme.Keygen(msk, `"sun" and "wind"`, abe.HumanPolicy)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	plaintext, err := scheme.Decrypt(sk, ct)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(string(plaintext))
	// Output: a message only the weather station should read
}
