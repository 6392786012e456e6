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

// Package abe implements Yct14, a Key-Policy Attribute-Based Encryption
// scheme, together with the access-policy toolchain it shares with other
// schemes in this module's lineage: a polymorphic policy AST (PolicyValue),
// two concrete policy grammars (JSONPolicy and HumanPolicy), Shamir-style
// secret sharing over policy trees, and a Lewko-Waters compiler from
// policy trees to monotone span programs (AbePolicy).
//
// Security warning
//
// YCT14 is known-broken: Yao, Chen and Tian's 2014 construction and its
// later "fixed" revision have both been shown to leak the master secret
// key to a coalition of colluding users, and a practical break of a
// deployed variant was demonstrated publicly at Black Hat EU 2021. This
// package exists to implement the published algorithm faithfully, for
// interoperability and study, not as a safe default for new systems. Do
// not deploy it to protect data whose confidentiality matters.
package abe
